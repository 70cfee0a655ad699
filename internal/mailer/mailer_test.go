package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type recordingTransport struct {
	sent []Message
	err  error
}

func (r *recordingTransport) Send(_ context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

type otpData struct {
	Name       string
	Code       string
	TTLMinutes int
}

func TestRenderOTPTemplates(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	for _, tmpl := range []Template{TemplateOTPVerification, TemplateOTPLogin, TemplateOTPPasswordReset} {
		t.Run(string(tmpl), func(t *testing.T) {
			msg, err := r.Render(tmpl, otpData{Name: "Jane", Code: "482913", TTLMinutes: 10})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if msg.Subject != subjects[tmpl] {
				t.Errorf("Subject = %q, want %q", msg.Subject, subjects[tmpl])
			}
			if !strings.Contains(msg.Text, "482913") || !strings.Contains(msg.Text, "10 minutes") {
				t.Errorf("Text missing code or ttl: %q", msg.Text)
			}
			if !strings.Contains(msg.HTML, "<strong>482913</strong>") {
				t.Errorf("HTML missing bold code: %q", msg.HTML)
			}
		})
	}
}

func TestRenderDropsInjectedHTML(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	msg, err := r.Render(TemplateOTPLogin, otpData{Name: "<script>alert(1)</script>", Code: "1", TTLMinutes: 1})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Errorf("HTML contains raw script tag: %q", msg.HTML)
	}
}

func TestRenderRequestStatusSubject(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	data := struct {
		Name, Kind, Title, OldStatus, Status, RequestID string
	}{"Jane", "maintenance", "Plumbing", "pending", "approved", "abc"}

	msg, err := r.Render(TemplateRequestStatus, data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if msg.Subject != "Your maintenance request is now approved" {
		t.Errorf("Subject = %q", msg.Subject)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if _, err := r.Render("nope", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestSendTemplate(t *testing.T) {
	transport := &recordingTransport{}
	m, err := New(transport, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = m.SendTemplate(context.Background(), "jane@example.com", "Jane", TemplateOTPVerification,
		otpData{Name: "Jane", Code: "123456", TTLMinutes: 10})
	if err != nil {
		t.Fatalf("SendTemplate: %v", err)
	}
	if len(transport.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(transport.sent))
	}
	if got := transport.sent[0]; got.To != "jane@example.com" || got.ToName != "Jane" {
		t.Errorf("recipient = %q <%q>", got.ToName, got.To)
	}
}

func TestSendTemplateTransportFailure(t *testing.T) {
	boom := errors.New("relay down")
	m, err := New(&recordingTransport{err: boom}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = m.SendTemplate(context.Background(), "jane@example.com", "", TemplateOTPLogin,
		otpData{Name: "Jane", Code: "1", TTLMinutes: 10})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
}

func TestBuildMIME(t *testing.T) {
	body := string(buildMIME("from@example.com", "to@example.com", Message{Subject: "Hi", Text: "plain", HTML: "<p>rich</p>"}))
	for _, want := range []string{"Subject: Hi\r\n", "text/plain", "text/html", "plain", "<p>rich</p>"} {
		if !strings.Contains(body, want) {
			t.Errorf("MIME body missing %q", want)
		}
	}
}

func TestBuildMIMEKeepsHeadersOnOneLine(t *testing.T) {
	body := string(buildMIME("from@example.com", "to@example.com\r\nCc: other@example.com", Message{
		Subject: "Your maintenance request is now done\r\nBcc: victim@example.com",
		Text:    "plain",
	}))
	headers, _, _ := strings.Cut(body, "\r\n\r\n")
	for _, line := range strings.Split(headers, "\r\n") {
		if strings.HasPrefix(line, "Bcc:") || strings.HasPrefix(line, "Cc:") {
			t.Fatalf("injected header line %q", line)
		}
	}
	if !strings.Contains(headers, "Subject: Your maintenance request is now done Bcc: victim@example.com\r\n") {
		t.Fatalf("unexpected headers:\n%s", headers)
	}
}

func TestBuildMIMEEncodesNonASCIISubject(t *testing.T) {
	body := string(buildMIME("from@example.com", "to@example.com", Message{Subject: "Réparation terminée"}))
	if !strings.Contains(body, "Subject: =?utf-8?q?") {
		t.Fatalf("subject not RFC 2047 encoded:\n%s", body)
	}
}
