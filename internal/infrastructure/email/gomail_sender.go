// Package email envía los correos de alerta a los administradores vía SMTP.
package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/danilalessandra/Petstock-Backend/internal/application/alertas"
	"github.com/danilalessandra/Petstock-Backend/pkg/config"
)

var _ alertas.EmailSender = (*GomailSender)(nil)

// GomailSender implementa alertas.EmailSender sobre gomail.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el sender con la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	from := cfg.From
	if cfg.User != "" {
		from = fmt.Sprintf("%s <%s>", cfg.From, cfg.User)
	}
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

// Send envía un correo HTML a los destinatarios indicados.
func (s *GomailSender) Send(to []string, asunto, html string) error {
	if len(to) == 0 {
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", asunto)
	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("email: enviar %q: %w", asunto, err)
	}
	return nil
}
