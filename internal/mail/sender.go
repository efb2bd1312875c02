package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type sendgridSender struct {
	cli  *sendgrid.Client
	from *sgmail.Email
}

// NewSender returns the sendgrid backed transport.
func NewSender(c *Config) dependency.Sender {
	return &sendgridSender{
		cli:  sendgrid.NewSendClient(c.APIKey),
		from: sgmail.NewEmail(c.FromName, c.FromEmail),
	}
}

func (s *sendgridSender) Send(ctx context.Context, ser *entity.SendEmailRequest) error {
	to := sgmail.NewEmail("", ser.To)
	msg := sgmail.NewSingleEmail(s.from, ser.Subject, to, "", ser.Html)
	if ser.ReplyTo != "" {
		msg.SetReplyTo(sgmail.NewEmail("", ser.ReplyTo))
	}

	resp, err := s.cli.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("mail api limit reached")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("error sending email bad status code: %d body: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
