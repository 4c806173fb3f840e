package service

import (
	"context"
	"encoding/json"

	"portfolio-web/internal/entity"
	"portfolio-web/internal/pkg/logger"
	"portfolio-web/internal/pkg/mailer"
	"portfolio-web/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// INotificationService forwards contact messages to the site owner.
type INotificationService interface {
	// Consume subscribes and returns; delivery runs until ctx is cancelled.
	Consume(ctx context.Context) error
}

type notificationService struct {
	subscriber message.Subscriber
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(sub message.Subscriber, m mailer.IEmailService, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: sub,
		mailer:     m,
		logger:     log,
	}
}

func (s *notificationService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, events.TypeContactReceived)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	s.logger.Info("NotificationService", "Listening for contact messages", nil)
	return nil
}

func (s *notificationService) processMessage(msg *message.Message) {
	var contact entity.ContactMessage
	if err := json.Unmarshal(msg.Payload, &contact); err != nil {
		s.logger.Error("NotificationService", "Failed to unmarshal contact message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite redelivery
		return
	}

	// No retries: a failed notification is logged and dropped, the message
	// itself is still in the visitor's session.
	if err := s.mailer.SendContactNotification(contact); err != nil {
		s.logger.Error("NotificationService", "Failed to send contact notification", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
	}
	msg.Ack()
}
