package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/savelyev-an/accountd/internal/config"
	"github.com/savelyev-an/accountd/internal/logger"
)

// webhookPayload is the JSON body posted to the configured webhook endpoint.
type webhookPayload struct {
	Event     string            `json:"event"`
	Recipient string            `json:"recipient"`
	Name      string            `json:"name,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	SentAt    time.Time         `json:"sent_at"`
}

// WebhookNotifier mirrors every notification to an external HTTP endpoint,
// typically a chat integration or an audit collector.
type WebhookNotifier struct {
	client *resty.Client
	logger *logger.Logger
}

// NewWebhookNotifier constructs a [WebhookNotifier] posting to the URL from
// the notify configuration.
func NewWebhookNotifier(cfg config.Notify, log *logger.Logger) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.WebhookURL, "/")).
		SetTimeout(timeout)

	return &WebhookNotifier{client: cli, logger: log}
}

// Send posts the notification payload as JSON. Any non-2xx response is an
// error so the dispatcher can log the failed delivery.
func (n *WebhookNotifier) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx)

	if msg.Recipient == "" {
		return ErrEmptyRecipient
	}
	if _, ok := templateSubjects[msg.Template]; !ok {
		return ErrUnknownTemplate
	}

	payload := webhookPayload{
		Event:     string(msg.Template),
		Recipient: msg.Recipient,
		Name:      msg.Name,
		Data:      msg.Data,
		SentAt:    time.Now(),
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("")
	if err != nil {
		log.Err(err).Str("func", "*WebhookNotifier.Send").Msg("error posting webhook notification")
		return fmt.Errorf("webhook request: %w", err)
	}

	if resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	return nil
}

// MultiNotifier fans a message out to every configured channel. Failures are
// collected per channel; the first error is returned after all channels were
// attempted.
type MultiNotifier struct {
	notifiers []Notifier
}

func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (n *MultiNotifier) Send(ctx context.Context, msg Message) error {
	var firstErr error
	for _, notifier := range n.notifiers {
		if err := notifier.Send(ctx, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
