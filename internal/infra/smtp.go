package infra

import (
	"bytes"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/config"

	"github.com/jordan-wright/email"
)

// ErrSMTPNoConfigurado is returned when no SMTP host was configured.
var ErrSMTPNoConfigurado = errors.New("mailer: SMTP no configurado")

// Mailer wraps SMTP configuration for sending emails with PDF attachments.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Configurado reports whether an SMTP host is set.
func (m *Mailer) Configurado() bool { return m != nil && m.host != "" }

// SendPDF sends body to the recipient with data attached as fileName.
func (m *Mailer) SendPDF(to, subject, body, fileName string, data []byte) error {
	if !m.Configurado() {
		return ErrSMTPNoConfigurado
	}
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if len(data) > 0 {
		if _, err := e.Attach(bytes.NewReader(data), fileName, "application/pdf"); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
