package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"estatehub/pkg/kafka"
	"estatehub/pkg/logger"
	"estatehub/pkg/mailer"
	"estatehub/pkg/notification"
)

type mockDispatcher struct {
	calls    int
	form     notification.FormType
	data     map[string]string
	response mailer.Results
}

func (m *mockDispatcher) Dispatch(_ context.Context, form notification.FormType, data map[string]string) mailer.Results {
	m.calls++
	m.form = form
	m.data = data
	return m.response
}

func newTestHandler(d Dispatcher) *EventHandler {
	return NewEventHandler(d, logger.New(logger.Config{Level: "info", Format: logger.JSON, Service: "test"}))
}

func eventMessage(t *testing.T, event notification.Event) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return kafka.Message{
		Key:     string(event.FormType),
		Value:   value,
		Headers: map[string]string{kafka.HeaderEventType: notification.EventTypeLeadNotification},
	}
}

func TestHandle_Dispatches(t *testing.T) {
	d := &mockDispatcher{response: mailer.Results{{Role: mailer.RoleSubmitter, Sent: true}}}
	h := newTestHandler(d)

	event := notification.NewEvent(notification.FormContact, map[string]string{"email": "jo@x.com", "name": "Jo"}, time.Now())
	if err := h.Handle(context.Background(), eventMessage(t, event)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.calls != 1 || d.form != notification.FormContact || d.data["name"] != "Jo" {
		t.Errorf("unexpected dispatch: calls=%d form=%s data=%v", d.calls, d.form, d.data)
	}
}

func TestHandle_SendFailuresAreNotRetried(t *testing.T) {
	d := &mockDispatcher{response: mailer.Results{
		{Role: mailer.RoleSubmitter, Sent: true},
		{Role: mailer.RoleCompany, Err: errors.New("smtp: connection reset")},
	}}
	h := newTestHandler(d)

	event := notification.NewEvent(notification.FormBuilder, map[string]string{"email": "jo@x.com"}, time.Now())
	if err := h.Handle(context.Background(), eventMessage(t, event)); err != nil {
		t.Fatalf("send failures must not fail the message, got %v", err)
	}
}

func TestHandle_MalformedEventsArePermanent(t *testing.T) {
	tests := []struct {
		name string
		msg  kafka.Message
	}{
		{"not json", kafka.Message{Value: []byte("{oops"), Headers: map[string]string{}}},
		{"unknown form", eventMessageRaw(t, `{"id":"1","form_type":"fax","data":{"email":"jo@x.com"}}`)},
		{"no recipient", eventMessageRaw(t, `{"id":"1","form_type":"contact","data":{}}`)},
		{"foreign event type", kafka.Message{
			Value:   []byte(`{"id":"1","form_type":"contact","data":{"email":"jo@x.com"}}`),
			Headers: map[string]string{kafka.HeaderEventType: "booking.created"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &mockDispatcher{}
			err := newTestHandler(d).Handle(context.Background(), tt.msg)

			var kerr *kafka.KafkaError
			if !errors.As(err, &kerr) || !kerr.IsPermanent() {
				t.Fatalf("expected permanent error, got %v", err)
			}
			if kafka.ShouldRetry(err, 0, 3) {
				t.Error("malformed events must not be retried")
			}
			if d.calls != 0 {
				t.Error("malformed events must not be dispatched")
			}
		})
	}
}

func eventMessageRaw(t *testing.T, raw string) kafka.Message {
	t.Helper()
	return kafka.Message{Value: []byte(raw), Headers: map[string]string{}}
}
