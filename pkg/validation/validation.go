// Package validation wraps go-playground/validator with the tags shared by every
// submission form, and translates its errors into field-level messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/go-playground/validator/v10"

	apperrors "estatehub/pkg/errors"
	"estatehub/pkg/logger"
	"estatehub/pkg/model"
)

const (
	TagIndianMobile      = "indian_mobile"
	TagContactEmail      = "contact_email"
	TagLeadStatus        = "lead_status"
	TagApplicationStatus = "application_status"
)

const (
	MsgMissingFields = "Missing required fields"
	MsgInvalidEmail  = "Invalid email format"
	MsgInvalidPhone  = "Invalid phone number format"
	MsgInvalidInput  = "Validation failed"
)

var (
	indianMobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
	contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	tag     string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Summary picks the message shown to the submitter: missing fields first, then email,
// then phone.
func (v ValidationErrors) Summary() string {
	has := func(tag string) bool {
		for _, e := range v {
			if e.tag == tag {
				return true
			}
		}
		return false
	}
	switch {
	case has("required"):
		return MsgMissingFields
	case has(TagContactEmail), has("email"):
		return MsgInvalidEmail
	case has(TagIndianMobile):
		return MsgInvalidPhone
	default:
		return MsgInvalidInput
	}
}

type Validator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func New(log *logger.Logger) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	register := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register '"+tag+"' validator", "error", err)
		}
	}
	register(TagIndianMobile, validateIndianMobile)
	register(TagContactEmail, validateContactEmail)
	register(TagLeadStatus, validateLeadStatus)
	register(TagApplicationStatus, validateApplicationStatus)

	return &Validator{validate: v, log: log}
}

func IsIndianMobile(phone string) bool {
	return indianMobileRegex.MatchString(phone)
}

// IsContactEmail applies the form regex and then checkmail's stricter format check.
func IsContactEmail(email string) bool {
	if !contactEmailRegex.MatchString(email) {
		return false
	}
	return checkmail.ValidateFormat(email) == nil
}

func validateIndianMobile(fl validator.FieldLevel) bool {
	return IsIndianMobile(fl.Field().String())
}

func validateContactEmail(fl validator.FieldLevel) bool {
	return IsContactEmail(fl.Field().String())
}

func validateLeadStatus(fl validator.FieldLevel) bool {
	return model.LeadStatus(fl.Field().String()).Valid()
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	return model.ApplicationStatus(fl.Field().String()).Valid()
}

// Struct validates s and returns ValidationErrors on failure.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			if err.Kind() == reflect.Slice {
				message = fmt.Sprintf("%s must contain at most %s items", err.Field(), err.Param())
			} else {
				message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
			}
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "numeric":
			message = fmt.Sprintf("%s must contain digits only", err.Field())
		case "email", TagContactEmail:
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case TagIndianMobile:
			message = fmt.Sprintf("%s must be a 10-digit mobile number starting with 6, 7, 8 or 9", err.Field())
		case "http_url":
			message = fmt.Sprintf("%s must be an http(s) URL", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid id", err.Field())
		case TagLeadStatus:
			message = "status must be one of pending, contacted, converted, not_interested"
		case TagApplicationStatus:
			message = "status must be one of pending, reviewed, shortlisted, rejected, hired"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
			tag:     err.Tag(),
		})
	}

	return validationErrors
}

// AsAppError turns a validation failure into the 400 response. Other errors pass through
// as internal errors.
func AsAppError(err error) *apperrors.AppError {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(verrs.Summary(), map[string]any{"errors": verrs})
	}
	var verr ValidationError
	if errors.As(err, &verr) {
		return apperrors.Validation(verr.Message, map[string]any{"errors": ValidationErrors{verr}})
	}
	return apperrors.Internal("Validation could not be completed", err)
}
