package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/motify/sitekit/internal/i18n"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

func newTestLocales(t *testing.T) locales.Config {
	t.Helper()
	cfg, err := locales.NewConfig(
		locales.Definition{Code: "el", BlogBase: "nea", Default: true},
		locales.Definition{Code: "en", BlogBase: "news"},
	)
	if err != nil {
		t.Fatalf("locales config: %v", err)
	}
	return cfg
}

type fakeSource struct {
	sent    []interfaces.EmailInput
	sendErr error
}

func (f *fakeSource) ListPages(context.Context, locales.Locale) ([]interfaces.Entity, error) {
	return nil, nil
}

func (f *fakeSource) ListPosts(context.Context, locales.Locale) ([]interfaces.Post, error) {
	return nil, nil
}

func (f *fakeSource) ListCategories(context.Context, locales.Locale) ([]interfaces.Category, error) {
	return nil, nil
}

func (f *fakeSource) ListProjects(context.Context, locales.Locale) ([]interfaces.Entity, error) {
	return nil, nil
}

func (f *fakeSource) Menus(context.Context, locales.Locale) ([]interfaces.Menu, error) {
	return nil, nil
}

func (f *fakeSource) BlogBases(context.Context) (map[locales.Locale]string, error) {
	return nil, nil
}

func (f *fakeSource) SendEmail(_ context.Context, input interfaces.EmailInput) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, input)
	return nil
}

func newTestService(t *testing.T, source *fakeSource) *Service {
	t.Helper()
	cfg := newTestLocales(t)
	bundle, err := i18n.Load(cfg)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return NewService(source, bundle, cfg, "team@motify.gr", "noreply@motify.gr", nil)
}

func validMessage() Message {
	return Message{
		Name:   "Μαρία Παπαδοπούλου",
		Email:  "maria@example.com",
		Phone:  "+30 210 0000000",
		Body:   "Θα ήθελα μια προσφορά για το έργο μας.",
		Locale: "el",
	}
}

func TestSubmit(t *testing.T) {
	source := &fakeSource{}
	svc := newTestService(t, source)

	if err := svc.Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(source.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(source.sent))
	}

	input := source.sent[0]
	if input.To != "team@motify.gr" || input.From != "noreply@motify.gr" {
		t.Fatalf("mailboxes = %q / %q", input.To, input.From)
	}
	if input.ReplyTo != "maria@example.com" {
		t.Fatalf("visitor address must go into reply-to, got %q", input.ReplyTo)
	}
	if input.ClientMutationID == "" {
		t.Fatal("mutation id must be set")
	}
	if !strings.Contains(input.Body, "Μαρία Παπαδοπούλου") {
		t.Fatalf("body missing sender name:\n%s", input.Body)
	}
	// No subject supplied: the localized default applies.
	if input.Subject == "" || input.Subject == "contact.subject" {
		t.Fatalf("subject = %q", input.Subject)
	}
}

func TestSubmitKeepsSubject(t *testing.T) {
	source := &fakeSource{}
	svc := newTestService(t, source)

	msg := validMessage()
	msg.Subject = "Προσφορά"
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if source.sent[0].Subject != "Προσφορά" {
		t.Fatalf("subject = %q", source.sent[0].Subject)
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Message)
	}{
		{"missing name", func(m *Message) { m.Name = "" }},
		{"short name", func(m *Message) { m.Name = "Μ" }},
		{"bad email", func(m *Message) { m.Email = "not-an-email" }},
		{"missing body", func(m *Message) { m.Body = "" }},
		{"body too long", func(m *Message) { m.Body = strings.Repeat("a", 4001) }},
	}

	svc := newTestService(t, &fakeSource{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := validMessage()
			tc.mutate(&msg)

			err := svc.Submit(context.Background(), msg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}
}

func TestSubmitDeliveryFailure(t *testing.T) {
	source := &fakeSource{sendErr: errors.New("smtp down")}
	svc := newTestService(t, source)

	err := svc.Submit(context.Background(), validMessage())
	if err == nil {
		t.Fatal("expected delivery error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryExternal) {
		t.Fatalf("expected external category, got %v", err)
	}
}

func TestSubmitUnknownLocaleFallsBack(t *testing.T) {
	source := &fakeSource{}
	svc := newTestService(t, source)

	msg := validMessage()
	msg.Locale = "de"
	msg.Subject = ""
	if err := svc.Submit(context.Background(), msg); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if source.sent[0].Subject == "" {
		t.Fatal("default-locale subject expected")
	}
}

func TestSuccessMessage(t *testing.T) {
	svc := newTestService(t, &fakeSource{})

	el := svc.SuccessMessage("el")
	en := svc.SuccessMessage("en")
	if el == "" || en == "" || el == en {
		t.Fatalf("expected localized success messages, got %q / %q", el, en)
	}
}
