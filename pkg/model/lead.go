package model

import (
	"fmt"
	"time"

	"estatehub/pkg/normalizer"
)

type LeadKind string

const (
	KindInquiry             LeadKind = "inquiry"
	KindBuilderInquiry      LeadKind = "builder_inquiry"
	KindLocationInquiry     LeadKind = "location_inquiry"
	KindProjectCallback     LeadKind = "project_callback"
	KindUserProjectCallback LeadKind = "user_project_callback"
	KindSearchBoxEnquiry    LeadKind = "search_box_enquiry"
)

type kindInfo struct {
	collection   string
	slug         string
	formType     string
	tracksStatus bool
}

var kinds = map[LeadKind]kindInfo{
	KindInquiry:             {collection: "inquiries", slug: "inquiries", formType: "contact"},
	KindBuilderInquiry:      {collection: "builder_inquiries", slug: "builder-inquiries", formType: "builder"},
	KindLocationInquiry:     {collection: "location_inquiries", slug: "location-inquiries", formType: "location", tracksStatus: true},
	KindProjectCallback:     {collection: "project_callbacks", slug: "project-callbacks", formType: "project_callback"},
	KindUserProjectCallback: {collection: "user_project_callbacks", slug: "user-project-callbacks"},
	KindSearchBoxEnquiry:    {collection: "search_box_enquiries", slug: "search-box-enquiries", formType: "search_box"},
}

// LeadKinds lists every kind in a stable order.
func LeadKinds() []LeadKind {
	return []LeadKind{
		KindInquiry,
		KindBuilderInquiry,
		KindLocationInquiry,
		KindProjectCallback,
		KindUserProjectCallback,
		KindSearchBoxEnquiry,
	}
}

func (k LeadKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

func (k LeadKind) Collection() string { return kinds[k].collection }

// Slug is the path segment used by the admin routes.
func (k LeadKind) Slug() string { return kinds[k].slug }

// FormType names the notification template. Empty means the kind sends no mail.
func (k LeadKind) FormType() string { return kinds[k].formType }

func (k LeadKind) TracksStatus() bool { return kinds[k].tracksStatus }

// ParseLeadKind accepts either the kind name or its route slug.
func ParseLeadKind(s string) (LeadKind, error) {
	for _, k := range LeadKinds() {
		if string(k) == s || k.Slug() == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown lead kind %q", s)
}

type Lead struct {
	ID             string     `json:"id,omitempty" bson:"_id,omitempty"`
	Kind           LeadKind   `json:"kind" bson:"kind"`
	Name           string     `json:"name" bson:"name"`
	Email          string     `json:"email" bson:"email"`
	Phone          string     `json:"phone" bson:"phone"`
	Message        string     `json:"message,omitempty" bson:"message,omitempty"`
	Source         string     `json:"source,omitempty" bson:"source,omitempty"`
	ProjectName    string     `json:"project_name,omitempty" bson:"project_name,omitempty"`
	BuilderName    string     `json:"builder_name,omitempty" bson:"builder_name,omitempty"`
	BuilderNameRaw string     `json:"builder_name_raw,omitempty" bson:"builder_name_raw,omitempty"`
	Location       string     `json:"location,omitempty" bson:"location,omitempty"`
	BaseLocation   string     `json:"base_location,omitempty" bson:"base_location,omitempty"`
	PropertyType   string     `json:"property_type,omitempty" bson:"property_type,omitempty"`
	Budget         string     `json:"budget,omitempty" bson:"budget,omitempty"`
	UserPropertyID string     `json:"user_property_id,omitempty" bson:"user_property_id,omitempty"`
	Status         LeadStatus `json:"status,omitempty" bson:"status,omitempty"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
}

// Normalize derives the canonical builder and base location from the raw values.
func (l *Lead) Normalize() {
	if l.BuilderNameRaw != "" {
		l.BuilderName = normalizer.BuilderName(l.BuilderNameRaw)
	}
	if l.Location != "" {
		l.BaseLocation = normalizer.Location(l.Location)
	}
}

// LeadUpdate is an admin field edit. Contact details are not re-validated here.
type LeadUpdate struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Message      *string `json:"message,omitempty" validate:"omitempty,max=2000"`
	Source       *string `json:"source,omitempty" validate:"omitempty,max=100"`
	ProjectName  *string `json:"project_name,omitempty" validate:"omitempty,max=200"`
	BuilderName  *string `json:"builder_name,omitempty" validate:"omitempty,max=200"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200"`
	PropertyType *string `json:"property_type,omitempty" validate:"omitempty,max=100"`
	Budget       *string `json:"budget,omitempty" validate:"omitempty,max=100"`
}

type LeadStatusUpdate struct {
	Status LeadStatus `json:"status" validate:"required,lead_status"`
}
