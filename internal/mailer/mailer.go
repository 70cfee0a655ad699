// Package mailer renders templated messages and hands them to a transport.
package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/config"
)

// Message is a rendered email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer renders named templates and dispatches them.
type Mailer struct {
	transport Transport
	renderer  *Renderer
	logger    *zap.Logger
}

// New builds a mailer around transport.
func New(transport Transport, logger *zap.Logger) (*Mailer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Mailer{transport: transport, renderer: renderer, logger: logger}, nil
}

// NewFromConfig selects the transport named by cfg.Transport.
func NewFromConfig(cfg config.EmailConfig, logger *zap.Logger) (*Mailer, error) {
	var transport Transport
	switch cfg.Transport {
	case "smtp":
		transport = NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.From, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUseTLS)
	case "mailersend":
		ms, err := NewMailerSendTransport(cfg.MailerSendKey, cfg.FromName, cfg.From)
		if err != nil {
			return nil, err
		}
		transport = ms
	case "log", "":
		transport = NewLogTransport(logger)
	default:
		return nil, fmt.Errorf("unknown MAIL_TRANSPORT %q", cfg.Transport)
	}
	logger.Info("mail transport selected", zap.String("transport", cfg.Transport))
	return New(transport, logger)
}

// SendTemplate renders tmpl with data and delivers it to the recipient.
func (m *Mailer) SendTemplate(ctx context.Context, to, toName string, tmpl Template, data any) error {
	msg, err := m.renderer.Render(tmpl, data)
	if err != nil {
		return err
	}
	msg.To = to
	msg.ToName = toName

	if err := m.transport.Send(ctx, msg); err != nil {
		m.logger.Warn("email delivery failed",
			zap.String("template", string(tmpl)),
			zap.String("to", to),
			zap.Error(err))
		return fmt.Errorf("send %s: %w", tmpl, err)
	}
	m.logger.Debug("email sent", zap.String("template", string(tmpl)), zap.String("to", to))
	return nil
}
