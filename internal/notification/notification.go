package notification

// Kind identifies a notification delivery mechanism.
type Kind string

// Supported notification kinds
const (
	KindEmail Kind = "email"
	KindSMS   Kind = "sms"
	KindPush  Kind = "push"
)

// Recipient is the target of a notification. Identifier is
// channel-specific: an email address, phone number or device token.
type Recipient struct {
	Identifier string `json:"identifier"`
	Kind       Kind   `json:"kind"`
	Name       string `json:"name,omitempty"`
}

// Content is the message to deliver. TemplateID and TemplateData are
// part of the contract but unused by the current channels.
type Content struct {
	Subject      string         `json:"subject"`
	Body         string         `json:"body"`
	TemplateID   string         `json:"template_id,omitempty"`
	TemplateData map[string]any `json:"template_data,omitempty"`
}

// Result reports the outcome of a single delivery attempt.
type Result struct {
	Success      bool      `json:"success"`
	Recipient    Recipient `json:"recipient"`
	ErrorMessage string    `json:"error_message,omitempty"`
	ExternalID   string    `json:"external_id,omitempty"`
}

// Channel delivers notifications. SendBulk attempts every recipient in
// input order and returns exactly one result per recipient; a failed
// delivery never aborts the remaining ones.
type Channel interface {
	Send(recipient Recipient, content Content) Result
	SendBulk(recipients []Recipient, content Content) []Result
}

// errWrongKind is the message reported when a recipient's kind does not
// match the channel.
const errWrongKind = "invalid notification type for this service"

func wrongKindResult(recipient Recipient) Result {
	return Result{
		Success:      false,
		Recipient:    recipient,
		ErrorMessage: errWrongKind,
	}
}
