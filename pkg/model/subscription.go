package model

import "time"

type Subscription struct {
	ID             string             `json:"id,omitempty" bson:"_id,omitempty"`
	Email          string             `json:"email" bson:"email"`
	Name           string             `json:"name,omitempty" bson:"name,omitempty"`
	Status         SubscriptionStatus `json:"status" bson:"status"`
	Source         string             `json:"source" bson:"source"`
	UnsubscribedAt *time.Time         `json:"unsubscribed_at,omitempty" bson:"unsubscribed_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type Application struct {
	ID          string            `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string            `json:"name" bson:"name"`
	Email       string            `json:"email" bson:"email"`
	Phone       string            `json:"phone" bson:"phone"`
	Position    string            `json:"position" bson:"position"`
	Experience  string            `json:"experience,omitempty" bson:"experience,omitempty"`
	CoverLetter string            `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	ResumeURL   string            `json:"resume_url,omitempty" bson:"resume_url,omitempty"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}

type ApplicationStatusUpdate struct {
	Status ApplicationStatus `json:"status" validate:"required,application_status"`
}
