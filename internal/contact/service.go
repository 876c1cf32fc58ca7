// Package contact handles contact form submissions: validation, email
// rendering, and delivery through the content backend.
package contact

import (
	"context"
	"html/template"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/motify/sitekit/internal/i18n"
	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

const (
	codeInvalidMessage = "CONTACT_INVALID_MESSAGE"
	codeDeliveryFailed = "CONTACT_DELIVERY_FAILED"
)

// Message is one contact form submission.
type Message struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone,omitempty"`
	Subject string         `json:"subject,omitempty"`
	Body    string         `json:"message"`
	Locale  locales.Locale `json:"locale,omitempty"`
}

// Validate checks the submission fields.
func (m Message) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&m.Email, validation.Required, is.Email),
		validation.Field(&m.Phone, validation.Length(0, 32)),
		validation.Field(&m.Subject, validation.Length(0, 200)),
		validation.Field(&m.Body, validation.Required, validation.Length(2, 4000)),
	)
}

var emailTemplate = template.Must(template.New("contact").Parse(`<table>
  <tr><td><strong>{{.NameLabel}}</strong></td><td>{{.Name}}</td></tr>
  <tr><td><strong>{{.EmailLabel}}</strong></td><td>{{.Email}}</td></tr>
  {{- if .Phone}}
  <tr><td><strong>{{.PhoneLabel}}</strong></td><td>{{.Phone}}</td></tr>
  {{- end}}
  <tr><td><strong>{{.MessageLabel}}</strong></td><td>{{.Body}}</td></tr>
</table>`))

// Service validates submissions and relays them as email.
type Service struct {
	source interfaces.ContentSource
	bundle *i18n.Bundle
	cfg    locales.Config
	to     string
	from   string
	logger interfaces.Logger
}

// NewService wires the contact service. to and from are the fixed mailbox
// endpoints; the visitor address goes into reply-to only.
func NewService(source interfaces.ContentSource, bundle *i18n.Bundle, cfg locales.Config, to, from string, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		source: source,
		bundle: bundle,
		cfg:    cfg,
		to:     strings.TrimSpace(to),
		from:   strings.TrimSpace(from),
		logger: logger,
	}
}

// Submit validates and delivers one contact message.
func (s *Service) Submit(ctx context.Context, msg Message) error {
	if !s.cfg.Contains(msg.Locale) {
		msg.Locale = s.cfg.Default()
	}
	if err := msg.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, s.bundle.T(msg.Locale, "contact.error.invalid")).
			WithTextCode(codeInvalidMessage)
	}

	body, err := s.renderBody(msg)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "contact: render email").
			WithTextCode(codeDeliveryFailed)
	}

	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = s.bundle.T(msg.Locale, "contact.subject")
	}

	input := interfaces.EmailInput{
		ClientMutationID: uuid.NewString(),
		To:               s.to,
		From:             s.from,
		ReplyTo:          msg.Email,
		Subject:          subject,
		Body:             body,
	}
	if err := s.source.SendEmail(ctx, input); err != nil {
		s.logger.Error("contact: delivery failed", "mutation_id", input.ClientMutationID, "error", err)
		return goerrors.Wrap(err, goerrors.CategoryExternal, s.bundle.T(msg.Locale, "contact.error.delivery")).
			WithTextCode(codeDeliveryFailed)
	}

	s.logger.Info("contact: message delivered", "mutation_id", input.ClientMutationID)
	return nil
}

// SuccessMessage returns the localized confirmation string.
func (s *Service) SuccessMessage(locale locales.Locale) string {
	if !s.cfg.Contains(locale) {
		locale = s.cfg.Default()
	}
	return s.bundle.T(locale, "contact.success")
}

func (s *Service) renderBody(msg Message) (string, error) {
	var b strings.Builder
	err := emailTemplate.Execute(&b, map[string]string{
		"NameLabel":    s.bundle.T(msg.Locale, "contact.field.name"),
		"EmailLabel":   s.bundle.T(msg.Locale, "contact.field.email"),
		"PhoneLabel":   s.bundle.T(msg.Locale, "contact.field.phone"),
		"MessageLabel": s.bundle.T(msg.Locale, "contact.field.message"),
		"Name":         msg.Name,
		"Email":        msg.Email,
		"Phone":        msg.Phone,
		"Body":         msg.Body,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
