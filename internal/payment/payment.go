package payment

import (
	log "github.com/sirupsen/logrus"
)

// Info holds the details of a single charge attempt.
// It is a value object, built fresh for every attempt.
type Info struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// Strategy processes a payment. Implementations are interchangeable;
// new payment methods are added as new implementations, never by
// modifying the callers.
type Strategy interface {
	Process(info Info) bool
}

// CreditCard charges through a credit card gateway.
type CreditCard struct{}

func (CreditCard) Process(info Info) bool {
	logAttempt("credit_card", info)
	return true
}

// PayPal charges through PayPal.
type PayPal struct{}

func (PayPal) Process(info Info) bool {
	logAttempt("paypal", info)
	return true
}

// Pix charges through the Brazilian instant payment rail.
type Pix struct{}

func (Pix) Process(info Info) bool {
	logAttempt("pix", info)
	return true
}

func logAttempt(method string, info Info) {
	log.WithFields(log.Fields{
		"method":      method,
		"amount":      info.Amount,
		"currency":    info.Currency,
		"description": info.Description,
	}).Info("Processing payment")
}
