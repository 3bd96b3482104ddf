// Package notifier turns notification events from Kafka into mail.
package notifier

import (
	"context"
	"fmt"

	"estatehub/pkg/kafka"
	"estatehub/pkg/logger"
	"estatehub/pkg/mailer"
	"estatehub/pkg/notification"
)

const ConsumerGroup = "notifier"

type Dispatcher interface {
	Dispatch(ctx context.Context, form notification.FormType, data map[string]string) mailer.Results
}

type EventHandler struct {
	dispatcher Dispatcher
	log        *logger.Logger
}

func NewEventHandler(dispatcher Dispatcher, log *logger.Logger) *EventHandler {
	return &EventHandler{dispatcher: dispatcher, log: log}
}

// Handle delivers one event. Only malformed events fail, and they fail permanently so
// the consumer parks them on the DLQ. Send failures are logged and the event is
// committed, since a retry would mail the recipients that already got it.
func (h *EventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	// Events published without the header are accepted.
	if eventType, ok := msg.GetHeader(kafka.HeaderEventType); ok && eventType != notification.EventTypeLeadNotification {
		return kafka.NewPermanentError("unexpected event type", fmt.Errorf("%q", eventType))
	}

	var event notification.Event
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("decode notification event", err)
	}
	if err := event.Validate(); err != nil {
		return kafka.NewPermanentError("invalid notification event", err)
	}

	results := h.dispatcher.Dispatch(ctx, event.FormType, event.Data)

	failed := results.Failed()
	attrs := []any{
		"event_id", event.ID,
		"form_type", event.FormType,
		"sent", len(results) - failed,
		"failed", failed,
	}
	if failed > 0 {
		h.log.Warn("Notification partially delivered", attrs...)
	} else {
		h.log.Info("Notification delivered", attrs...)
	}
	return nil
}
