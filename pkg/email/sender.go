package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
)

var (
	ErrEmptyRecipient   = errors.New("empty recipient")
	ErrEmptyContent     = errors.New("empty subject or body")
	ErrInvalidRecipient = errors.New("invalid recipient address")
)

// SendEmailInput is one outgoing message. Text is an optional plain-text
// alternative for clients that do not render HTML.
type SendEmailInput struct {
	To      string
	Subject string
	Body    string
	Text    string
}

type Sender interface {
	Send(input SendEmailInput) error
}

// GenerateBodyFromHTML renders templateName from fsys into Body.
func (e *SendEmailInput) GenerateBodyFromHTML(fsys fs.FS, templateName string, data any) error {
	tmpl, err := template.ParseFS(fsys, templateName)
	if err != nil {
		return fmt.Errorf("parse template %s failed: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render template %s failed: %w", templateName, err)
	}
	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	switch {
	case e.To == "":
		return ErrEmptyRecipient
	case e.Subject == "" || e.Body == "":
		return ErrEmptyContent
	case !IsEmailValid(e.To):
		return ErrInvalidRecipient
	}
	return nil
}
