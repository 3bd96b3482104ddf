package mailer

import (
	"context"
	"time"

	"estatehub/pkg/logger"
	"estatehub/pkg/notification"
)

type dispatcher interface {
	Dispatch(ctx context.Context, form notification.FormType, data map[string]string) Results
}

// MailNotifier sends mail in-process instead of through Kafka. Used when
// NOTIFICATION_TRANSPORT=smtp.
type MailNotifier struct {
	dispatcher dispatcher
	timeout    time.Duration
	log        *logger.Logger
}

func NewMailNotifier(d dispatcher, timeout time.Duration, log *logger.Logger) *MailNotifier {
	return &MailNotifier{dispatcher: d, timeout: timeout, log: log}
}

func (n *MailNotifier) Notify(_ context.Context, form notification.FormType, data map[string]string) {
	payload := make(map[string]string, len(data))
	for k, v := range data {
		payload[k] = v
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		results := n.dispatcher.Dispatch(ctx, form, payload)
		if failed := results.Failed(); failed > 0 {
			n.log.Warn("Notification partially delivered", "form_type", form, "failed", failed, "total", len(results))
		}
	}()
}
