package core

import (
	"bytes"
	"net/mail"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

type (
	// EmailMessage is a renderable email. BodyStr is used as-is for simple
	// text-only mail; TemplateBody is rendered with TemplateData when set.
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string

		// templated contents
		TemplateBody string
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently.
		SendMessages(messages ...*EmailMessage)
	}
)

// Render resolves the final TextContent of the message.
func (m *EmailMessage) Render() error {
	if m.TemplateBody == "" {
		m.TextContent = m.BodyStr
		return nil
	}
	tmpl, err := texttmpl.New("email").Parse(m.TemplateBody)
	if err != nil {
		return errors.Wrap(err, "parsing email template")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m.TemplateData); err != nil {
		return errors.Wrap(err, "rendering email template")
	}
	m.TextContent = buf.String()
	return nil
}

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0 || len(m.Cc) > 0 || len(m.Bcc) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != "" || m.HTMLContent != "" || m.BodyStr != ""
}
