// Package notification carries lead events from the submission path to the mail
// dispatcher. Notifiers never report errors to the caller: a submission that was stored
// succeeds regardless of what happens to its notification.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type FormType string

const (
	FormContact         FormType = "contact"
	FormBuilder         FormType = "builder"
	FormLocation        FormType = "location"
	FormProjectCallback FormType = "project_callback"
	FormSearchBox       FormType = "search_box"
	FormNewsletter      FormType = "newsletter"
	FormCareer          FormType = "career"
	FormAdminOTP        FormType = "admin_otp"
)

func (f FormType) Valid() bool {
	switch f {
	case FormContact, FormBuilder, FormLocation, FormProjectCallback, FormSearchBox,
		FormNewsletter, FormCareer, FormAdminOTP:
		return true
	}
	return false
}

type Notifier interface {
	Notify(ctx context.Context, form FormType, data map[string]string)
}

// Event is the wire form published to the notification topic.
type Event struct {
	ID         string            `json:"id"`
	FormType   FormType          `json:"form_type"`
	Data       map[string]string `json:"data"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewEvent(form FormType, data map[string]string, now time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		FormType:   form,
		Data:       data,
		OccurredAt: now.UTC(),
	}
}

func (e Event) Validate() error {
	if !e.FormType.Valid() {
		return fmt.Errorf("unknown form type %q", e.FormType)
	}
	if e.Data["email"] == "" {
		return fmt.Errorf("event %s has no recipient email", e.ID)
	}
	return nil
}

// Nop drops every notification. Used by services that have no notification transport.
type Nop struct{}

func (Nop) Notify(context.Context, FormType, map[string]string) {}
