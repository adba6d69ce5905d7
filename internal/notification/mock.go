package notification

import (
	"fmt"
	"sync"
)

// SentNotification is one recorded delivery attempt.
type SentNotification struct {
	Recipient Recipient
	Content   Content
}

// Recorder stores every delivery attempted through the mock channels
// that share it. Safe for concurrent use.
type Recorder struct {
	mutex sync.Mutex
	sent  []SentNotification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(recipient Recipient, content Content) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.sent = append(r.sent, SentNotification{Recipient: recipient, Content: content})
	return len(r.sent)
}

// Sent returns a copy of all recorded deliveries in attempt order.
func (r *Recorder) Sent() []SentNotification {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := make([]SentNotification, len(r.sent))
	copy(out, r.sent)
	return out
}

// Clear drops all recorded deliveries.
func (r *Recorder) Clear() {
	r.mutex.Lock()
	r.sent = nil
	r.mutex.Unlock()
}

// MockChannel is a test double that records every delivery attempt.
// Each channel owns a private recorder unless one is supplied with
// NewMockChannelWithRecorder; independent scenarios therefore do not
// interfere by default, and cross-instance assertions are an explicit
// opt-in.
type MockChannel struct {
	recorder   *Recorder
	shouldFail bool
}

// NewMockChannel creates a mock channel with a private recorder.
func NewMockChannel(shouldFail bool) *MockChannel {
	return NewMockChannelWithRecorder(shouldFail, NewRecorder())
}

// NewMockChannelWithRecorder creates a mock channel recording into the
// given shared recorder.
func NewMockChannelWithRecorder(shouldFail bool, recorder *Recorder) *MockChannel {
	return &MockChannel{recorder: recorder, shouldFail: shouldFail}
}

// Sent returns the deliveries recorded by this channel's recorder.
func (c *MockChannel) Sent() []SentNotification {
	return c.recorder.Sent()
}

// Send records the attempt and reports success unless the channel was
// built in should-fail mode.
func (c *MockChannel) Send(recipient Recipient, content Content) Result {
	count := c.recorder.record(recipient, content)

	if c.shouldFail {
		return Result{
			Success:      false,
			Recipient:    recipient,
			ErrorMessage: "simulated send failure",
		}
	}

	return Result{
		Success:    true,
		Recipient:  recipient,
		ExternalID: fmt.Sprintf("mock_%d", count),
	}
}

// SendBulk records one attempt per recipient, in order.
func (c *MockChannel) SendBulk(recipients []Recipient, content Content) []Result {
	results := make([]Result, 0, len(recipients))
	for _, recipient := range recipients {
		results = append(results, c.Send(recipient, content))
	}
	return results
}
