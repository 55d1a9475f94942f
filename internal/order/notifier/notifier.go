package notifier

import (
	"context"
	"fmt"
	"net/http"

	"praktico/internal/domain"
	"praktico/internal/infrastructure/httpclient"

	"go.uber.org/zap"
)

type allowedMentions struct {
	Parse []string `json:"parse"`
}

type webhookPayload struct {
	Content         string          `json:"content"`
	AllowedMentions allowedMentions `json:"allowed_mentions"`
}

// WebhookNotifier posts new orders to a Discord-compatible webhook with
// mentions disabled.
type WebhookNotifier struct {
	url       string
	storeName string
	client    *httpclient.Client
}

func NewWebhookNotifier(url, storeName string, client *httpclient.Client) *WebhookNotifier {
	return &WebhookNotifier{
		url:       url,
		storeName: storeName,
		client:    client,
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, order domain.Order) error {
	_, err := n.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    n.url,
		Body: webhookPayload{
			Content:         FormatNotification(n.storeName, order),
			AllowedMentions: allowedMentions{Parse: []string{}},
		},
	})
	if err != nil {
		return fmt.Errorf("posting order %s to webhook: %w", order.ID, err)
	}
	return nil
}

// LogNotifier writes the summary to the log. Used when no webhook is set.
type LogNotifier struct {
	storeName string
	logger    *zap.Logger
}

func NewLogNotifier(storeName string, logger *zap.Logger) *LogNotifier {
	return &LogNotifier{storeName: storeName, logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, order domain.Order) error {
	n.logger.Info("new order",
		zap.String("orderId", order.ID),
		zap.String("message", BuildOrderMessage(n.storeName, order.Payload)),
	)
	return nil
}
