package notification

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrUnsupportedChannel is returned when a factory receives a channel
// kind it does not know how to build.
var ErrUnsupportedChannel = errors.New("unsupported notification channel")

// Config carries channel-specific settings. Recognized keys depend on
// the target kind:
//
//	email: smtp_host, smtp_port, smtp_user, smtp_password, default_from_email
//	mock:  should_fail (default false)
//	push:  webhook_url
type Config map[string]any

// Factory resolves a channel kind name and configuration into a Channel.
type Factory interface {
	Create(kind string, cfg Config) (Channel, error)
}

// DefaultFactory builds the channels shipped with the service.
type DefaultFactory struct{}

// NewDefaultFactory creates the standard channel factory.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{}
}

func (f *DefaultFactory) Create(kind string, cfg Config) (Channel, error) {
	switch kind {
	case "email":
		return buildEmailChannel(cfg)
	case "mock":
		shouldFail, err := optionalBool(cfg, "should_fail")
		if err != nil {
			return nil, err
		}
		return NewMockChannel(shouldFail), nil
	case "push":
		webhookURL, err := requireString(cfg, "webhook_url")
		if err != nil {
			return nil, err
		}
		return NewPushChannel(webhookURL), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChannel, kind)
	}
}

func buildEmailChannel(cfg Config) (Channel, error) {
	host, err := requireString(cfg, "smtp_host")
	if err != nil {
		return nil, err
	}
	port, err := requireInt(cfg, "smtp_port")
	if err != nil {
		return nil, err
	}
	user, err := requireString(cfg, "smtp_user")
	if err != nil {
		return nil, err
	}
	password, err := requireString(cfg, "smtp_password")
	if err != nil {
		return nil, err
	}
	fromEmail, err := requireString(cfg, "default_from_email")
	if err != nil {
		return nil, err
	}

	transport := NewSMTPTransport(SMTPConfig{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	})
	return NewEmailChannel(transport, fromEmail), nil
}

func requireString(cfg Config, key string) (string, error) {
	raw, ok := cfg[key]
	if !ok {
		return "", fmt.Errorf("missing config key %q", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("config key %q must be a string", key)
	}
	return value, nil
}

func requireInt(cfg Config, key string) (int, error) {
	raw, ok := cfg[key]
	if !ok {
		return 0, fmt.Errorf("missing config key %q", key)
	}
	switch value := raw.(type) {
	case int:
		return value, nil
	case float64:
		// JSON-decoded configs carry numbers as float64.
		return int(value), nil
	default:
		return 0, fmt.Errorf("config key %q must be an integer", key)
	}
}

func optionalBool(cfg Config, key string) (bool, error) {
	raw, ok := cfg[key]
	if !ok {
		return false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("config key %q must be a boolean", key)
	}
	return value, nil
}

// LoggingFactory wraps another Factory and logs every resolution. It
// returns exactly the delegate's result, so decorators can be stacked
// without changing behavior.
type LoggingFactory struct {
	inner Factory
}

// NewLoggingFactory wraps a factory with creation logging.
func NewLoggingFactory(inner Factory) *LoggingFactory {
	return &LoggingFactory{inner: inner}
}

func (f *LoggingFactory) Create(kind string, cfg Config) (Channel, error) {
	log.WithField("kind", kind).Info("Creating notification channel")

	channel, err := f.inner.Create(kind, cfg)
	if err != nil {
		log.WithField("kind", kind).Error("Notification channel creation failed: ", err)
		return nil, err
	}

	log.WithFields(log.Fields{
		"kind":    kind,
		"channel": fmt.Sprintf("%T", channel),
	}).Info("Notification channel created")

	return channel, nil
}
