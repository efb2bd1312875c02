package mail

import (
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"log/slog"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type Config struct {
	APIKey     string `mapstructure:"sendgrid_api_key"`
	FromEmail  string `mapstructure:"from_email"`
	FromName   string `mapstructure:"from_email_name"`
	ReplyTo    string `mapstructure:"reply_to"`
	StaffEmail string `mapstructure:"staff_email"`
}

type Mailer struct {
	cli       dependency.Sender
	c         *Config
	templates map[string]*template.Template
}

func New(c *Config, cli dependency.Sender) (*Mailer, error) {
	if c.APIKey == "" || c.FromEmail == "" || c.FromName == "" || c.StaffEmail == "" {
		return nil, fmt.Errorf("incomplete config: %+v", c)
	}

	m := &Mailer{
		cli:       cli,
		c:         c,
		templates: make(map[string]*template.Template),
	}

	if err := m.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	return m, nil
}

func (m *Mailer) parseTemplates() error {
	templateDir := "templates"

	dirEntries, err := templatesFS.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		templatePath := filepath.Join(templateDir, entry.Name())
		tmpl, err := template.ParseFS(templatesFS, templatePath)
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}

		m.templates[entry.Name()] = tmpl
	}

	return nil
}

func (m *Mailer) buildSendMailRequest(to, tn string, data interface{}) (*entity.SendEmailRequest, error) {
	tmpl, ok := m.templates[tn]
	if !ok {
		return nil, fmt.Errorf("template not found: %v", tn)
	}

	subject, ok := templateSubjects[tn]
	if !ok {
		return nil, fmt.Errorf("subject not found for template: %v", tn)
	}

	body := &strings.Builder{}
	if err := tmpl.Execute(body, data); err != nil {
		return nil, fmt.Errorf("error executing template: %w", err)
	}

	return &entity.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.c.FromName, m.c.FromEmail),
		To:      to,
		Html:    body.String(),
		Subject: subject,
		ReplyTo: m.c.ReplyTo,
	}, nil
}

// sendWithInsert records the attempt in the outbox, sends, and marks the row.
// A failed send keeps its error message on the row and is never retried.
func (m *Mailer) sendWithInsert(ctx context.Context, rep dependency.Repository, ser *entity.SendEmailRequest) error {
	id, err := rep.Mail().AddMail(ctx, ser)
	if err != nil {
		return fmt.Errorf("error inserting email: %w", err)
	}

	if err := m.cli.Send(ctx, ser); err != nil {
		if aerr := rep.Mail().AddError(ctx, id, err.Error()); aerr != nil {
			slog.Default().ErrorContext(ctx, "can't record mail error",
				slog.String("err", aerr.Error()),
			)
		}
		return fmt.Errorf("error sending email: %w", err)
	}

	if err := rep.Mail().UpdateSent(ctx, id); err != nil {
		return fmt.Errorf("error updating email: %w", err)
	}
	return nil
}

// dispatch sends one templated mail, absorbing the failure into the returned
// flag. Notification failures never propagate to the caller.
func (m *Mailer) dispatch(ctx context.Context, rep dependency.Repository, to, tn string, data interface{}) bool {
	ser, err := m.buildSendMailRequest(to, tn, data)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't build mail",
			slog.String("template", tn),
			slog.String("err", err.Error()),
		)
		return false
	}
	if err := m.sendWithInsert(ctx, rep, ser); err != nil {
		slog.Default().ErrorContext(ctx, "can't send mail",
			slog.String("template", tn),
			slog.String("err", err.Error()),
		)
		return false
	}
	return true
}
