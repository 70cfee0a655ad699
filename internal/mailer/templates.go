package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Template names a message body under templates/.
type Template string

const (
	TemplateOTPVerification  Template = "otp_verification"
	TemplateOTPLogin         Template = "otp_login"
	TemplateOTPPasswordReset Template = "otp_password_reset"
	TemplateRequestStatus    Template = "request_status"
)

var subjects = map[Template]string{
	TemplateOTPVerification:  "Verify your account",
	TemplateOTPLogin:         "Your login code",
	TemplateOTPPasswordReset: "Reset your password",
	TemplateRequestStatus:    "Your {{.Kind}} request is now {{.Status}}",
}

//go:embed templates/*.md
var templateFS embed.FS

// Renderer turns Markdown templates into plain text and HTML bodies.
type Renderer struct {
	bodies   *template.Template
	subjects map[Template]*template.Template
	md       goldmark.Markdown
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	bodies, err := template.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.md")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}

	subjectTemplates := make(map[Template]*template.Template, len(subjects))
	for name, text := range subjects {
		if bodies.Lookup(string(name)+".md") == nil {
			return nil, fmt.Errorf("mail template %s has no body", name)
		}
		t, err := template.New(string(name)).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse subject %s: %w", name, err)
		}
		subjectTemplates[name] = t
	}

	return &Renderer{
		bodies:   bodies,
		subjects: subjectTemplates,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

// Render executes the template. HTML is produced from the Markdown text;
// raw HTML in interpolated values is dropped by goldmark's default renderer.
func (r *Renderer) Render(name Template, data any) (Message, error) {
	subjectTmpl, ok := r.subjects[name]
	if !ok {
		return Message{}, fmt.Errorf("unknown mail template %q", name)
	}

	var subject bytes.Buffer
	if err := subjectTmpl.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("render subject %s: %w", name, err)
	}

	var text bytes.Buffer
	if err := r.bodies.ExecuteTemplate(&text, string(name)+".md", data); err != nil {
		return Message{}, fmt.Errorf("render body %s: %w", name, err)
	}

	var html bytes.Buffer
	if err := r.md.Convert(text.Bytes(), &html); err != nil {
		return Message{}, fmt.Errorf("render html %s: %w", name, err)
	}

	return Message{Subject: subject.String(), Text: text.String(), HTML: html.String()}, nil
}
