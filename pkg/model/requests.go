package model

import (
	"strings"

	"estatehub/pkg/sanitizer"
)

const (
	DefaultInquirySource         = "Website Form"
	DefaultBuilderInquiryMessage = "General inquiry about projects"
	DefaultLocationPropertyType  = "Any"
	DefaultLocationBudget        = "Not specified"
	DefaultProjectCallbackSource = "Projects Page Callback"
	DefaultNewsletterSource      = "Website"
)

// LeadRequest is a public submission payload for one lead kind.
type LeadRequest interface {
	Sanitize()
	ToLead() *Lead
}

type contact struct {
	name, email, phone *string
}

func (c contact) sanitize() {
	*c.name = sanitizer.TrimAndNormalize(*c.name)
	*c.email = sanitizer.Email(*c.email)
	*c.phone = sanitizer.Phone(*c.phone)
}

type InquiryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,contact_email"`
	Phone   string `json:"phone" validate:"required,indian_mobile"`
	Message string `json:"message" validate:"omitempty,max=2000"`
	Source  string `json:"source" validate:"omitempty,max=100"`
}

func (r *InquiryRequest) Sanitize() {
	contact{&r.Name, &r.Email, &r.Phone}.sanitize()
	r.Message = sanitizer.Text(r.Message)
	r.Source = sanitizer.TrimAndNormalize(r.Source)
}

func (r *InquiryRequest) ToLead() *Lead {
	return &Lead{
		Kind:    KindInquiry,
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Message: r.Message,
		Source:  orDefault(r.Source, DefaultInquirySource),
	}
}

type BuilderInquiryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,contact_email"`
	Phone       string `json:"phone" validate:"required,indian_mobile"`
	BuilderName string `json:"builder_name" validate:"required,max=200"`
	Message     string `json:"message" validate:"omitempty,max=2000"`
}

func (r *BuilderInquiryRequest) Sanitize() {
	contact{&r.Name, &r.Email, &r.Phone}.sanitize()
	r.BuilderName = sanitizer.TrimAndNormalize(r.BuilderName)
	r.Message = sanitizer.Text(r.Message)
}

func (r *BuilderInquiryRequest) ToLead() *Lead {
	return &Lead{
		Kind:           KindBuilderInquiry,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		BuilderNameRaw: r.BuilderName,
		Message:        orDefault(r.Message, DefaultBuilderInquiryMessage),
	}
}

type LocationInquiryRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,contact_email"`
	Phone        string `json:"phone" validate:"required,indian_mobile"`
	LocationName string `json:"location_name" validate:"required,max=200"`
	PropertyType string `json:"property_type" validate:"omitempty,max=100"`
	Budget       string `json:"budget" validate:"omitempty,max=100"`
	Message      string `json:"message" validate:"omitempty,max=2000"`
}

func (r *LocationInquiryRequest) Sanitize() {
	contact{&r.Name, &r.Email, &r.Phone}.sanitize()
	r.LocationName = sanitizer.TrimAndNormalize(r.LocationName)
	r.PropertyType = sanitizer.TrimAndNormalize(r.PropertyType)
	r.Budget = sanitizer.TrimAndNormalize(r.Budget)
	r.Message = sanitizer.Text(r.Message)
}

func (r *LocationInquiryRequest) ToLead() *Lead {
	return &Lead{
		Kind:         KindLocationInquiry,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Location:     r.LocationName,
		PropertyType: orDefault(r.PropertyType, DefaultLocationPropertyType),
		Budget:       orDefault(r.Budget, DefaultLocationBudget),
		Message:      orDefault(r.Message, "Interested in properties in "+r.LocationName),
	}
}

type ProjectCallbackRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,contact_email"`
	Phone       string `json:"phone" validate:"required,indian_mobile"`
	ProjectName string `json:"project_name" validate:"required,max=200"`
	BuilderName string `json:"builder_name" validate:"omitempty,max=200"`
}

func (r *ProjectCallbackRequest) Sanitize() {
	contact{&r.Name, &r.Email, &r.Phone}.sanitize()
	r.ProjectName = sanitizer.TrimAndNormalize(r.ProjectName)
	r.BuilderName = sanitizer.TrimAndNormalize(r.BuilderName)
}

func (r *ProjectCallbackRequest) ToLead() *Lead {
	return &Lead{
		Kind:           KindProjectCallback,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		ProjectName:    r.ProjectName,
		BuilderNameRaw: r.BuilderName,
		Source:         DefaultProjectCallbackSource,
	}
}

type UserProjectCallbackRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,contact_email"`
	Phone          string `json:"phone" validate:"required,indian_mobile"`
	ProjectName    string `json:"project_name" validate:"required,max=200"`
	BuilderName    string `json:"builder_name" validate:"omitempty,max=200"`
	UserPropertyID string `json:"user_property_id" validate:"omitempty,mongodb"`
}

func (r *UserProjectCallbackRequest) Sanitize() {
	contact{&r.Name, &r.Email, &r.Phone}.sanitize()
	r.ProjectName = sanitizer.TrimAndNormalize(r.ProjectName)
	r.BuilderName = sanitizer.TrimAndNormalize(r.BuilderName)
	r.UserPropertyID = strings.TrimSpace(r.UserPropertyID)
}

func (r *UserProjectCallbackRequest) ToLead() *Lead {
	return &Lead{
		Kind:           KindUserProjectCallback,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		ProjectName:    r.ProjectName,
		BuilderNameRaw: r.BuilderName,
		UserPropertyID: r.UserPropertyID,
	}
}

type SearchBoxRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,contact_email"`
	Phone        string `json:"phone" validate:"required,indian_mobile"`
	Location     string `json:"location" validate:"omitempty,max=200"`
	PropertyType string `json:"property_type" validate:"omitempty,max=100"`
	ProjectName  string `json:"project_name" validate:"omitempty,max=200"`
	BuilderName  string `json:"builder_name" validate:"omitempty,max=200"`
}

func (r *SearchBoxRequest) Sanitize() {
	contact{&r.Name, &r.Email, &r.Phone}.sanitize()
	r.Location = sanitizer.TrimAndNormalize(r.Location)
	r.PropertyType = sanitizer.TrimAndNormalize(r.PropertyType)
	r.ProjectName = sanitizer.TrimAndNormalize(r.ProjectName)
	r.BuilderName = sanitizer.TrimAndNormalize(r.BuilderName)
}

func (r *SearchBoxRequest) ToLead() *Lead {
	return &Lead{
		Kind:           KindSearchBoxEnquiry,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Location:       r.Location,
		PropertyType:   r.PropertyType,
		ProjectName:    r.ProjectName,
		BuilderNameRaw: r.BuilderName,
	}
}

type NewsletterRequest struct {
	Email  string `json:"email" validate:"required,contact_email"`
	Name   string `json:"name" validate:"omitempty,max=100"`
	Source string `json:"source" validate:"omitempty,max=100"`
}

func (r *NewsletterRequest) Sanitize() {
	r.Email = sanitizer.Email(r.Email)
	r.Name = sanitizer.TrimAndNormalize(r.Name)
	r.Source = sanitizer.TrimAndNormalize(r.Source)
}

func (r *NewsletterRequest) ToSubscription() *Subscription {
	return &Subscription{
		Email:  r.Email,
		Name:   r.Name,
		Status: SubscriptionActive,
		Source: orDefault(r.Source, DefaultNewsletterSource),
	}
}

type CareerRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,contact_email"`
	Phone       string `json:"phone" validate:"required,indian_mobile"`
	Position    string `json:"position" validate:"required,max=100"`
	Experience  string `json:"experience" validate:"omitempty,max=100"`
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=5000"`
	Message     string `json:"message" validate:"omitempty,max=5000"`
	ResumeURL   string `json:"resume_url" validate:"omitempty,http_url,max=2048"`
}

func (r *CareerRequest) Sanitize() {
	contact{&r.Name, &r.Email, &r.Phone}.sanitize()
	r.Position = sanitizer.TrimAndNormalize(r.Position)
	r.Experience = sanitizer.TrimAndNormalize(r.Experience)
	r.CoverLetter = sanitizer.Text(r.CoverLetter)
	r.Message = sanitizer.Text(r.Message)
	r.ResumeURL = strings.TrimSpace(r.ResumeURL)
}

func (r *CareerRequest) ToApplication() *Application {
	return &Application{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Position:    r.Position,
		Experience:  r.Experience,
		CoverLetter: orDefault(r.CoverLetter, r.Message),
		ResumeURL:   r.ResumeURL,
		Status:      ApplicationPending,
	}
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
