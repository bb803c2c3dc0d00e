package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"

	"stock-backend/internal/models"
)

// SettingsSource provides the current email configuration. Returns
// (nil, nil) when nothing has been saved yet.
type SettingsSource interface {
	Get(ctx context.Context) (*models.EmailSettings, error)
}

// EmailNotifier composes and sends the notification mail over SMTP. The
// provider field of the settings picks the relay: the hosted providers
// (sendgrid, resend, gmail) are plain SMTP endpoints with fixed hosts and
// credentials conventions, everything else is raw smtp host/port.
type EmailNotifier struct {
	settings SettingsSource
	send     func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailNotifier(settings SettingsSource) *EmailNotifier {
	return &EmailNotifier{
		settings: settings,
		send:     sendMail,
	}
}

func (n *EmailNotifier) TransferReceived(ctx context.Context, ev Event) error {
	settings, err := n.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading email settings: %w", err)
	}
	if settings == nil || !settings.Configured {
		log.Printf("[Notify] Email not configured, skipping notification for transfer %s", ev.Transfer.ID)
		return nil
	}

	addr, auth, err := relayFor(settings)
	if err != nil {
		return err
	}

	sender := settings.SenderEmail
	if sender == "" {
		sender = "noreply@fairfield.com"
	}

	subject := fmt.Sprintf("Transfer #%s Received", ev.Transfer.ID)
	if ev.IsTest {
		subject = "Test Email - Stock Control System"
	}

	body, err := renderBody(ev)
	if err != nil {
		return fmt.Errorf("rendering notification body: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", sender)
	fmt.Fprintf(&msg, "To: %s\r\n", settings.RecipientEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.Write(body)

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := n.send(ctx, addr, auth, sender, []string{settings.RecipientEmail}, msg.Bytes()); err != nil {
		return fmt.Errorf("sending via %s: %w", settings.Provider, err)
	}
	log.Printf("[Notify] Email sent to %s for transfer %s", settings.RecipientEmail, ev.Transfer.ID)
	return nil
}

// sendMail is smtp.SendMail with the ctx deadline applied to the whole
// exchange, so a stalled relay cannot hang the sending goroutine past the
// notification timeout.
func sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(a); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// relayFor maps settings to an SMTP address and auth.
func relayFor(s *models.EmailSettings) (string, smtp.Auth, error) {
	switch s.Provider {
	case models.ProviderGmail:
		return "smtp.gmail.com:587",
			smtp.PlainAuth("", s.SMTPUsername, s.SMTPPassword, "smtp.gmail.com"), nil
	case models.ProviderSendgrid:
		return "smtp.sendgrid.net:587",
			smtp.PlainAuth("", "apikey", s.APIKey, "smtp.sendgrid.net"), nil
	case models.ProviderResend:
		return "smtp.resend.com:587",
			smtp.PlainAuth("", "resend", s.APIKey, "smtp.resend.com"), nil
	case models.ProviderSMTP:
		port := s.SMTPPort
		if port == 0 {
			port = 587
		}
		return fmt.Sprintf("%s:%d", s.SMTPHost, port),
			smtp.PlainAuth("", s.SMTPUsername, s.SMTPPassword, s.SMTPHost), nil
	}
	return "", nil, fmt.Errorf("unknown email provider %q", s.Provider)
}
