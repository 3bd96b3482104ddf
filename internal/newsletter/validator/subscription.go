package validator

import (
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
	"estatehub/pkg/validation"
)

type SubscriptionValidator struct {
	v *validation.Validator
}

func NewSubscriptionValidator(log *logger.Logger) *SubscriptionValidator {
	return &SubscriptionValidator{v: validation.New(log)}
}

func (sv *SubscriptionValidator) Validate(req *model.NewsletterRequest) error {
	return sv.v.Struct(req)
}
