package validator

import (
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
	"estatehub/pkg/validation"
)

type ApplicationValidator struct {
	v *validation.Validator
}

func NewApplicationValidator(log *logger.Logger) *ApplicationValidator {
	return &ApplicationValidator{v: validation.New(log)}
}

func (av *ApplicationValidator) Validate(req *model.CareerRequest) error {
	return av.v.Struct(req)
}

func (av *ApplicationValidator) ValidateStatus(u *model.ApplicationStatusUpdate) error {
	return av.v.Struct(u)
}
