package services

import (
	"fmt"

	mail "github.com/wneessen/go-mail"

	"gatekeeper-http-service/config"
)

// InterfaceNotificationService is the outbound notifier boundary. All
// methods are fire-and-forget: delivery failures are logged, never
// propagated, so a gate operation can never fail on a dead mail server.
type InterfaceNotificationService interface {
	SendVisitorAlert(toEmail, residentName, visitorName, purpose string)
}

// NotificationService sends visitor alert emails over SMTP
type NotificationService struct {
	Config *config.Config
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg *config.Config) InterfaceNotificationService {
	return &NotificationService{
		Config: cfg,
	}
}

// SendVisitorAlert notifies a resident that a visitor has arrived at
// the gate. Runs in its own goroutine, off the request's critical path.
func (s *NotificationService) SendVisitorAlert(toEmail, residentName, visitorName, purpose string) {
	go func() {
		if err := s.sendVisitorAlert(toEmail, residentName, visitorName, purpose); err != nil {
			config.Warning("failed to send visitor alert to %s: %v", toEmail, err)
			return
		}
		config.Info("visitor alert sent to %s", toEmail)
	}()
}

func (s *NotificationService) sendVisitorAlert(toEmail, residentName, visitorName, purpose string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.Config.SMTPFrom); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("Visitor Arrival Alert - " + visitorName)

	htmlContent := fmt.Sprintf(
		"<html><body style='font-family: Arial, sans-serif; color: #333;'>"+
			"<h2>Hello %s,</h2>"+
			"<p>This is an automated alert from the society security gate.</p>"+
			"<p><strong>Visitor:</strong> %s<br>"+
			"<strong>Purpose:</strong> %s<br>"+
			"<strong>Location:</strong> %s</p>"+
			"<p>If you were not expecting this visitor, please contact the security gate immediately.</p>"+
			"</body></html>",
		residentName, visitorName, purpose, s.Config.DefaultGateName)
	msg.SetBodyString(mail.TypeTextHTML, htmlContent)

	client, err := mail.NewClient(s.Config.SMTPHost,
		mail.WithPort(s.Config.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.Config.SMTPUsername),
		mail.WithPassword(s.Config.SMTPPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	return client.DialAndSend(msg)
}
