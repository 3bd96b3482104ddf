package notification

import (
	"context"
	"time"

	"estatehub/pkg/kafka"
	"estatehub/pkg/logger"
	"estatehub/pkg/middleware"
)

const (
	EventTypeLeadNotification = "lead.notification"
	SchemaVersion             = "1"
)

type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaNotifier publishes events for cmd/notifier to deliver. Publishing happens on a
// detached goroutine bounded by its own timeout, so request cancellation does not drop
// the event.
type KafkaNotifier struct {
	publisher Publisher
	source    string
	timeout   time.Duration
	log       *logger.Logger
	now       func() time.Time
}

func NewKafkaNotifier(publisher Publisher, source string, timeout time.Duration, log *logger.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		publisher: publisher,
		source:    source,
		timeout:   timeout,
		log:       log,
		now:       time.Now,
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, form FormType, data map[string]string) {
	event := NewEvent(form, copyData(data), n.now())
	requestID := middleware.RequestIDFromContext(ctx)

	go n.publish(event, requestID)
}

func (n *KafkaNotifier) publish(event Event, requestID string) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	msg, err := kafka.NewMessage().
		WithKey(string(event.FormType)).
		WithValue(event).
		WithEventID(event.ID).
		WithEventType(EventTypeLeadNotification).
		WithCorrelationID(requestID).
		WithSchemaVersion(SchemaVersion).
		WithSource(n.source).
		Build()
	if err != nil {
		n.log.Error("Failed to build notification message", "form_type", event.FormType, "event_id", event.ID, "error", err)
		return
	}

	if err := n.publisher.Publish(ctx, msg); err != nil {
		n.log.Error("Failed to publish notification",
			"form_type", event.FormType,
			"event_id", event.ID,
			"request_id", requestID,
			"error", err,
		)
		return
	}

	n.log.Debug("Notification published", "form_type", event.FormType, "event_id", event.ID)
}

func copyData(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
