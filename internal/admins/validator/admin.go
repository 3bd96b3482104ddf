package validator

import (
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
	"estatehub/pkg/validation"
)

type AdminValidator struct {
	v *validation.Validator
}

func NewAdminValidator(log *logger.Logger) *AdminValidator {
	return &AdminValidator{v: validation.New(log)}
}

func (av *AdminValidator) ValidateLogin(req *model.LoginRequest) error {
	return av.v.Struct(req)
}

func (av *AdminValidator) ValidateResetOTP(req *model.ResetOTPRequest) error {
	return av.v.Struct(req)
}

func (av *AdminValidator) ValidateResetPassword(req *model.ResetPasswordRequest) error {
	return av.v.Struct(req)
}
