package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mailersend/mailersend-go"
)

// MailerSendTransport delivers through the MailerSend API.
type MailerSendTransport struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendTransport(apiKey, fromName, fromEmail string) (*MailerSendTransport, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, errors.New("mailersend requires MAILERSEND_API_KEY and MAIL_FROM")
	}
	return &MailerSendTransport{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
	}, nil
}

func (m *MailerSendTransport) Send(ctx context.Context, msg Message) error {
	email := m.client.Email.NewMessage()
	email.SetFrom(m.from)
	email.SetRecipients([]mailersend.Recipient{{Name: msg.ToName, Email: msg.To}})
	email.SetSubject(msg.Subject)
	if strings.TrimSpace(msg.Text) != "" {
		email.SetText(msg.Text)
	}
	if strings.TrimSpace(msg.HTML) != "" {
		email.SetHTML(msg.HTML)
	}

	res, err := m.client.Email.Send(ctx, email)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
