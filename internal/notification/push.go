package notification

import (
	"fmt"
	"net/http"

	"github.com/brmartins/orderflow/internal/patterns"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// pushPayload is the JSON body posted to the webhook endpoint.
type pushPayload struct {
	DeliveryID  string `json:"delivery_id"`
	DeviceToken string `json:"device_token"`
	Name        string `json:"name,omitempty"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

// PushChannel delivers notifications by posting them to a push gateway
// webhook. Concurrent deliveries are capped by a bulkhead so a slow
// gateway cannot pile up outbound requests.
type PushChannel struct {
	client     *resty.Client
	webhookURL string
	bulkhead   *patterns.Bulkhead
}

// NewPushChannel creates a push channel targeting the given webhook URL.
func NewPushChannel(webhookURL string) *PushChannel {
	return &PushChannel{
		client: resty.New().
			SetTimeout(patterns.DefaultTimeout).
			SetRetryCount(0),
		webhookURL: webhookURL,
		bulkhead:   patterns.NewBulkhead(10, "push-gateway", "orderflow"),
	}
}

// Send posts a single notification to the push gateway.
func (c *PushChannel) Send(recipient Recipient, content Content) Result {
	if recipient.Kind != KindPush {
		return wrongKindResult(recipient)
	}

	deliveryID := "push_" + uuid.New().String()
	payload := pushPayload{
		DeliveryID:  deliveryID,
		DeviceToken: recipient.Identifier,
		Name:        recipient.Name,
		Title:       content.Subject,
		Body:        content.Body,
	}

	err := c.bulkhead.Execute(func() error {
		resp, httpErr := c.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(c.webhookURL)

		if httpErr != nil {
			return fmt.Errorf("HTTP error: %w", httpErr)
		}
		if resp.StatusCode() != http.StatusOK {
			return fmt.Errorf("push gateway returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil
	})

	if err != nil {
		log.WithField("device_token", recipient.Identifier).Error("Push delivery failed: ", err)
		return Result{
			Success:      false,
			Recipient:    recipient,
			ErrorMessage: err.Error(),
		}
	}

	return Result{
		Success:    true,
		Recipient:  recipient,
		ExternalID: deliveryID,
	}
}

// SendBulk posts to each recipient in input order; failures are captured
// per recipient and never abort the remaining deliveries.
func (c *PushChannel) SendBulk(recipients []Recipient, content Content) []Result {
	results := make([]Result, 0, len(recipients))
	for _, recipient := range recipients {
		results = append(results, c.Send(recipient, content))
	}
	return results
}
