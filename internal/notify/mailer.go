package notify

import (
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Config carries the SMTP settings for outbound batch notifications.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Mailer delivers batch notifications over SMTP with a bounded timeout.
// Delivery is best effort: a failure here never affects posted ledger
// entries.
type Mailer struct {
	cfg Config
}

func NewMailer(cfg Config) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Mailer{cfg: cfg}
}

// Send delivers one HTML message with the given attachments.
func (m *Mailer) Send(recipients []string, subject, body string, attachments ...string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("setting mail sender: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("setting mail recipients: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	for _, path := range attachments {
		msg.AttachFile(path)
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}

	return nil
}
