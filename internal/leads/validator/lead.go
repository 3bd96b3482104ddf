package validator

import (
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
	"estatehub/pkg/validation"
)

type LeadValidator struct {
	v      *validation.Validator
	logger *logger.Logger
}

func NewLeadValidator(log *logger.Logger) *LeadValidator {
	v := validation.New(log)
	log.Info("Lead validator initialized successfully")

	return &LeadValidator{
		v:      v,
		logger: log,
	}
}

// Validate checks a sanitized submission payload.
func (lv *LeadValidator) Validate(req model.LeadRequest) error {
	return lv.v.Struct(req)
}

func (lv *LeadValidator) ValidateUpdate(u *model.LeadUpdate) error {
	return lv.v.Struct(u)
}

func (lv *LeadValidator) ValidateStatus(u *model.LeadStatusUpdate) error {
	return lv.v.Struct(u)
}
