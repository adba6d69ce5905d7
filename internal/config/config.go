package config

import (
	"os"
	"strconv"

	"github.com/brmartins/orderflow/internal/notification"
)

// Config holds the service configuration, loaded from environment
// variables with sensible defaults for local runs.
type Config struct {
	Port           string
	NotifyChannel  string
	FactoryLogging bool

	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	DefaultFromEmail string

	PushWebhookURL string
	MockShouldFail bool
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		NotifyChannel:  getEnv("NOTIFY_CHANNEL", "email"),
		FactoryLogging: getEnvBool("NOTIFY_FACTORY_LOGGING", true),

		SMTPHost:         getEnv("SMTP_HOST", "smtp.example.com"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUser:         getEnv("SMTP_USER", "user@example.com"),
		SMTPPassword:     getEnv("SMTP_PASSWORD", "password"),
		DefaultFromEmail: getEnv("DEFAULT_FROM_EMAIL", "notifications@example.com"),

		PushWebhookURL: getEnv("PUSH_WEBHOOK_URL", "http://localhost:8090/push"),
		MockShouldFail: getEnvBool("MOCK_SHOULD_FAIL", false),
	}
}

// EmailChannelConfig returns the factory config for the email channel.
func (c *Config) EmailChannelConfig() notification.Config {
	return notification.Config{
		"smtp_host":          c.SMTPHost,
		"smtp_port":          c.SMTPPort,
		"smtp_user":          c.SMTPUser,
		"smtp_password":      c.SMTPPassword,
		"default_from_email": c.DefaultFromEmail,
	}
}

// MockChannelConfig returns the factory config for the mock channel.
func (c *Config) MockChannelConfig() notification.Config {
	return notification.Config{
		"should_fail": c.MockShouldFail,
	}
}

// PushChannelConfig returns the factory config for the push channel.
func (c *Config) PushChannelConfig() notification.Config {
	return notification.Config{
		"webhook_url": c.PushWebhookURL,
	}
}

// ChannelConfig returns the factory config for the given channel kind.
func (c *Config) ChannelConfig(kind string) notification.Config {
	switch kind {
	case "mock":
		return c.MockChannelConfig()
	case "push":
		return c.PushChannelConfig()
	default:
		return c.EmailChannelConfig()
	}
}

// NewFactory assembles the notification factory, decorated with logging
// when enabled.
func (c *Config) NewFactory() notification.Factory {
	var factory notification.Factory = notification.NewDefaultFactory()
	if c.FactoryLogging {
		factory = notification.NewLoggingFactory(factory)
	}
	return factory
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
