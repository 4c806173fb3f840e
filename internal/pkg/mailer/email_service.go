package mailer

import (
	"fmt"
	"html"

	"portfolio-web/internal/entity"
	"portfolio-web/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendContactNotification(msg entity.ContactMessage) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	inbox       string
}

func NewEmailService(host string, port int, username, password, senderName, inbox string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	if inbox == "" {
		inbox = username
	}
	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
		inbox:       inbox,
	}
}

func (s *emailService) SendContactNotification(msg entity.ContactMessage) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", s.inbox)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", "[Portfolio] "+msg.Subject)
	m.SetBody("text/html", contactBody(msg))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send contact notification: %w", err)
	}
	return nil
}

func contactBody(msg entity.ContactMessage) string {
	phone := msg.Phone
	if phone == "" {
		phone = "-"
	}
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New contact message</h2>
			<p><strong>From:</strong> %s &lt;%s&gt;</p>
			<p><strong>Phone:</strong> %s</p>
			<p><strong>Received:</strong> %s</p>
			<hr>
			<p style="white-space: pre-wrap;">%s</p>
		</div>
	`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(phone),
		html.EscapeString(msg.Timestamp),
		html.EscapeString(msg.Message),
	)
}

// logEmailService is used when no SMTP host is configured.
type logEmailService struct {
	logger logger.ILogger
}

func NewLogEmailService(log logger.ILogger) IEmailService {
	return &logEmailService{logger: log}
}

func (s *logEmailService) SendContactNotification(msg entity.ContactMessage) error {
	s.logger.Info("Mailer", "SMTP not configured, contact message logged only", map[string]interface{}{
		"name":    msg.Name,
		"email":   msg.Email,
		"subject": msg.Subject,
	})
	return nil
}
