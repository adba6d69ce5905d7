package notification

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"github.com/brmartins/orderflow/internal/patterns"
	log "github.com/sirupsen/logrus"
)

// Session is an open connection to a mail transport. Callers must Close
// it when done, whether or not individual sends failed.
type Session interface {
	Send(from, to string, msg []byte) error
	Close() error
}

// Transport acquires mail sessions. The concrete SMTP wire protocol
// lives behind this port so the channel can be tested without a server.
type Transport interface {
	Connect() (Session, error)
}

// EmailChannel delivers notifications over a mail transport.
type EmailChannel struct {
	transport Transport
	fromEmail string
}

// NewEmailChannel creates an email channel sending from the given address.
func NewEmailChannel(transport Transport, fromEmail string) *EmailChannel {
	return &EmailChannel{
		transport: transport,
		fromEmail: fromEmail,
	}
}

// buildMessage assembles the raw message envelope for one recipient.
func (c *EmailChannel) buildMessage(recipient Recipient, content Content) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", c.fromEmail))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", recipient.Identifier))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", content.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(content.Body)
	return buf.Bytes()
}

// Send delivers to a single recipient over its own transport session.
func (c *EmailChannel) Send(recipient Recipient, content Content) Result {
	if recipient.Kind != KindEmail {
		return wrongKindResult(recipient)
	}

	session, err := c.transport.Connect()
	if err != nil {
		return Result{
			Success:      false,
			Recipient:    recipient,
			ErrorMessage: err.Error(),
		}
	}
	defer session.Close()

	return c.deliver(session, recipient, content)
}

// SendBulk delivers to every recipient over one shared session. The
// session is released after all recipients are attempted, regardless of
// individual failures.
func (c *EmailChannel) SendBulk(recipients []Recipient, content Content) []Result {
	results := make([]Result, 0, len(recipients))

	session, err := c.transport.Connect()
	if err != nil {
		for _, recipient := range recipients {
			results = append(results, Result{
				Success:      false,
				Recipient:    recipient,
				ErrorMessage: err.Error(),
			})
		}
		return results
	}
	defer session.Close()

	for _, recipient := range recipients {
		if recipient.Kind != KindEmail {
			results = append(results, wrongKindResult(recipient))
			continue
		}
		results = append(results, c.deliver(session, recipient, content))
	}

	return results
}

func (c *EmailChannel) deliver(session Session, recipient Recipient, content Content) Result {
	msg := c.buildMessage(recipient, content)

	if err := session.Send(c.fromEmail, recipient.Identifier, msg); err != nil {
		log.WithFields(log.Fields{
			"recipient": recipient.Identifier,
			"subject":   content.Subject,
		}).Error("Email delivery failed: ", err)

		return Result{
			Success:      false,
			Recipient:    recipient,
			ErrorMessage: err.Error(),
		}
	}

	return Result{
		Success:    true,
		Recipient:  recipient,
		ExternalID: "email_" + recipient.Identifier,
	}
}

// SMTPConfig holds the settings for the default SMTP transport.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// SMTPTransport is the net/smtp backed Transport. Each Connect dials
// the server, negotiates STARTTLS and authenticates.
type SMTPTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport creates an SMTP transport with the given settings.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

func (t *SMTPTransport) Connect() (Session, error) {
	addr := fmt.Sprintf("%s:%d", t.cfg.Host, t.cfg.Port)

	dialer := &net.Dialer{Timeout: patterns.SlowServiceTimeout}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("SMTP dial failed: %w", err)
	}

	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SMTP handshake failed: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: t.cfg.Host}); err != nil {
			client.Close()
			return nil, fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	if t.cfg.User != "" {
		auth := smtp.PlainAuth("", t.cfg.User, t.cfg.Password, t.cfg.Host)
		if err := client.Auth(auth); err != nil {
			client.Close()
			return nil, fmt.Errorf("SMTP auth failed: %w", err)
		}
	}

	return &smtpSession{client: client}, nil
}

type smtpSession struct {
	client *smtp.Client
}

func (s *smtpSession) Send(from, to string, msg []byte) error {
	if err := s.client.Mail(from); err != nil {
		return err
	}
	if err := s.client.Rcpt(to); err != nil {
		// Abort the transaction so the session stays usable for the
		// next recipient of a bulk send.
		s.client.Reset()
		return err
	}
	w, err := s.client.Data()
	if err != nil {
		s.client.Reset()
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *smtpSession) Close() error {
	return s.client.Quit()
}
