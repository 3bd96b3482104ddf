package model

import (
	"time"

	"estatehub/pkg/normalizer"
)

const MaxListingPhotos = 3

type ListingOrigin string

const (
	OriginAdmin ListingOrigin = "admin"
	OriginUser  ListingOrigin = "user"
)

type Listing struct {
	ID               string        `json:"id,omitempty" bson:"_id,omitempty"`
	Origin           ListingOrigin `json:"origin" bson:"origin"`
	ProjectName      string        `json:"project_name" bson:"project_name" validate:"required,max=200"`
	BuilderName      string        `json:"builder_name" bson:"builder_name"`
	BuilderNameRaw   string        `json:"builder_name_raw,omitempty" bson:"builder_name_raw,omitempty" validate:"omitempty,max=200"`
	ProjectType      string        `json:"project_type,omitempty" bson:"project_type,omitempty" validate:"omitempty,max=100"`
	MinPrice         string        `json:"min_price,omitempty" bson:"min_price,omitempty" validate:"omitempty,max=50"`
	MaxPrice         string        `json:"max_price,omitempty" bson:"max_price,omitempty" validate:"omitempty,max=50"`
	SizeSqft         string        `json:"size_sqft,omitempty" bson:"size_sqft,omitempty" validate:"omitempty,max=50"`
	BHK              string        `json:"bhk,omitempty" bson:"bhk,omitempty" validate:"omitempty,max=50"`
	StatusPossession string        `json:"status_possession,omitempty" bson:"status_possession,omitempty" validate:"omitempty,max=100"`
	Location         string        `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=200"`
	BaseLocation     string        `json:"base_location,omitempty" bson:"base_location,omitempty"`
	ReraNumber       string        `json:"rera_number,omitempty" bson:"rera_number,omitempty" validate:"omitempty,max=100"`
	PossessionDate   string        `json:"possession_date,omitempty" bson:"possession_date,omitempty" validate:"omitempty,max=50"`
	Photos           []string      `json:"photos" bson:"photos" validate:"max=3,dive,http_url"`
	OwnerName        string        `json:"owner_name,omitempty" bson:"owner_name,omitempty" validate:"omitempty,max=100"`
	OwnerEmail       string        `json:"owner_email,omitempty" bson:"owner_email,omitempty" validate:"omitempty,contact_email"`
	OwnerPhone       string        `json:"owner_phone,omitempty" bson:"owner_phone,omitempty" validate:"omitempty,indian_mobile"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`
}

// Normalize derives the canonical builder and base location. Raw builder input is
// accepted through BuilderName on create and preserved in BuilderNameRaw.
func (l *Listing) Normalize() {
	if l.BuilderNameRaw == "" {
		l.BuilderNameRaw = l.BuilderName
	}
	l.BuilderName = normalizer.BuilderName(l.BuilderNameRaw)
	l.BaseLocation = normalizer.Location(l.Location)
}

type ListingUpdate struct {
	ProjectName      *string   `json:"project_name,omitempty" validate:"omitempty,min=1,max=200"`
	BuilderName      *string   `json:"builder_name,omitempty" validate:"omitempty,max=200"`
	ProjectType      *string   `json:"project_type,omitempty" validate:"omitempty,max=100"`
	MinPrice         *string   `json:"min_price,omitempty" validate:"omitempty,max=50"`
	MaxPrice         *string   `json:"max_price,omitempty" validate:"omitempty,max=50"`
	SizeSqft         *string   `json:"size_sqft,omitempty" validate:"omitempty,max=50"`
	BHK              *string   `json:"bhk,omitempty" validate:"omitempty,max=50"`
	StatusPossession *string   `json:"status_possession,omitempty" validate:"omitempty,max=100"`
	Location         *string   `json:"location,omitempty" validate:"omitempty,max=200"`
	ReraNumber       *string   `json:"rera_number,omitempty" validate:"omitempty,max=100"`
	PossessionDate   *string   `json:"possession_date,omitempty" validate:"omitempty,max=50"`
	Photos           *[]string `json:"photos,omitempty" validate:"omitempty,max=3,dive,http_url"`
	OwnerName        *string   `json:"owner_name,omitempty" validate:"omitempty,max=100"`
	OwnerEmail       *string   `json:"owner_email,omitempty" validate:"omitempty,contact_email"`
	OwnerPhone       *string   `json:"owner_phone,omitempty" validate:"omitempty,indian_mobile"`
}

// ListingQuery carries the public search filters. Empty fields are ignored.
type ListingQuery struct {
	Location     string
	BHK          string
	Builder      string
	Status       string
	ProjectType  string
	SearchTerm   string
	IncludeUsers bool
}
