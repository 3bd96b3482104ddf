package validator

import (
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
	"estatehub/pkg/validation"
)

// ownerContact is required on user-submitted listings only.
type ownerContact struct {
	OwnerName  string `json:"owner_name" validate:"required,max=100"`
	OwnerEmail string `json:"owner_email" validate:"required,contact_email"`
	OwnerPhone string `json:"owner_phone" validate:"required,indian_mobile"`
}

type ListingValidator struct {
	v *validation.Validator
}

func NewListingValidator(log *logger.Logger) *ListingValidator {
	return &ListingValidator{v: validation.New(log)}
}

func (lv *ListingValidator) Validate(l *model.Listing) error {
	return lv.v.Struct(l)
}

func (lv *ListingValidator) ValidateUserProperty(l *model.Listing) error {
	if err := lv.v.Struct(ownerContact{
		OwnerName:  l.OwnerName,
		OwnerEmail: l.OwnerEmail,
		OwnerPhone: l.OwnerPhone,
	}); err != nil {
		return err
	}
	return lv.v.Struct(l)
}

func (lv *ListingValidator) ValidateUpdate(u *model.ListingUpdate) error {
	return lv.v.Struct(u)
}
