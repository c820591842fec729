package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/savelyev-an/accountd/internal/config"
	"github.com/savelyev-an/accountd/internal/logger"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateSubjects = map[Template]string{
	TemplateEmailVerification:   "Verify your email address",
	TemplatePasswordReset:       "Your password has been reset",
	TemplateProfessionalUpgrade: "Your account has been upgraded",
	TemplateAccountLocked:       "Your account has been locked",
}

// SMTPNotifier delivers notification emails through a gomail dialer using
// the HTML bodies embedded under templates/.
type SMTPNotifier struct {
	dialer    *gomail.Dialer
	templates *template.Template
	from      string
	logger    *logger.Logger
}

// NewSMTPNotifier constructs an [SMTPNotifier] from the SMTP configuration.
// It fails only when the embedded templates cannot be parsed; connectivity
// problems surface later, on Send.
func NewSMTPNotifier(cfg config.SMTP, log *logger.Logger) (*SMTPNotifier, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing notification templates: %w", err)
	}

	return &SMTPNotifier{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		templates: templates,
		from:      cfg.From,
		logger:    log,
	}, nil
}

// Send renders the message body and delivers it over SMTP.
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx)

	if msg.Recipient == "" {
		return ErrEmptyRecipient
	}

	subject, body, err := n.render(msg)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", msg.Recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		log.Err(err).Str("func", "*SMTPNotifier.Send").Str("template", string(msg.Template)).Msg("error sending notification email")
		return fmt.Errorf("error sending notification email: %w", err)
	}

	return nil
}

// render produces the subject line and the HTML body for the message.
func (n *SMTPNotifier) render(msg Message) (subject, body string, err error) {
	subject, ok := templateSubjects[msg.Template]
	if !ok {
		return "", "", ErrUnknownTemplate
	}

	data := map[string]string{"Name": msg.Name}
	for k, v := range msg.Data {
		data[k] = v
	}

	buf := new(bytes.Buffer)
	if err := n.templates.ExecuteTemplate(buf, string(msg.Template)+".html", data); err != nil {
		return "", "", fmt.Errorf("error executing template %s: %w", msg.Template, err)
	}

	return subject, buf.String(), nil
}
