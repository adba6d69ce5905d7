package usecase

import (
	"fmt"
	"strings"

	"github.com/brmartins/orderflow/internal/metrics"
	"github.com/brmartins/orderflow/internal/notification"
	"github.com/brmartins/orderflow/internal/order"
)

// NotifyOrderCreatedInput is the request to notify a customer that an
// order was created. Channel defaults to "email" when empty; DeviceToken
// is only consulted when the push channel is selected.
type NotifyOrderCreatedInput struct {
	Order         *order.Order
	CustomerEmail string
	CustomerName  string
	Channel       string
	DeviceToken   string
}

// NotifyOrderCreated resolves a notification channel through the
// factory, formats the order confirmation and sends it.
type NotifyOrderCreated struct {
	factory notification.Factory
	config  notification.Config
}

// NewNotifyOrderCreated wires the notify-order-created use case. The
// config is handed to the factory when resolving the channel.
func NewNotifyOrderCreated(factory notification.Factory, config notification.Config) *NotifyOrderCreated {
	return &NotifyOrderCreated{factory: factory, config: config}
}

// Execute sends the confirmation and reports the delivery result in the
// response envelope.
func (uc *NotifyOrderCreated) Execute(input NotifyOrderCreatedInput) (resp Response[notification.Result]) {
	defer func() {
		if r := recover(); r != nil {
			resp = fail[notification.Result](fmt.Sprintf("error sending notification: %v", r))
		}
	}()

	kind := input.Channel
	if kind == "" {
		kind = "email"
	}

	channel, err := uc.factory.Create(kind, uc.config)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(kind, "failed").Inc()
		return fail[notification.Result](fmt.Sprintf("error sending notification: %v", err))
	}

	recipient := recipientFor(kind, input)

	content := notification.Content{
		Subject: fmt.Sprintf("Order %s created successfully!", input.Order.ID),
		Body:    formatOrderBody(input.Order, input.CustomerName),
	}

	result := channel.Send(recipient, content)

	status := "sent"
	if !result.Success {
		status = "failed"
	}
	metrics.NotificationsTotal.WithLabelValues(kind, status).Inc()

	return Response[notification.Result]{
		Success: result.Success,
		Data:    result,
		Error:   result.ErrorMessage,
	}
}

// recipientFor builds the recipient matching the selected channel: push
// delivers to the customer's device token, everything else to the email
// address.
func recipientFor(kind string, input NotifyOrderCreatedInput) notification.Recipient {
	if kind == "push" {
		return notification.Recipient{
			Identifier: input.DeviceToken,
			Kind:       notification.KindPush,
			Name:       input.CustomerName,
		}
	}
	return notification.Recipient{
		Identifier: input.CustomerEmail,
		Kind:       notification.KindEmail,
		Name:       input.CustomerName,
	}
}

func formatOrderBody(o *order.Order, customerName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", customerName)
	b.WriteString("Your order has been created successfully!\n\n")
	fmt.Fprintf(&b, "Order number: %s\n", o.ID)
	fmt.Fprintf(&b, "Total: %s\n\n", formatCurrency(o.Total))
	b.WriteString("Order items:\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s: %dx %s\n", item.ProductID, item.Quantity, formatCurrency(item.Price))
	}
	b.WriteString("\nThank you for your purchase!")
	return b.String()
}

func formatCurrency(amount float64) string {
	return fmt.Sprintf("R$ %.2f", amount)
}
