package service

import (
	"context"
	"time"

	"portfolio-web/internal/dto"
	"portfolio-web/internal/entity"
	"portfolio-web/pkg/events"
	"portfolio-web/pkg/store"
)

// Layout of the human readable timestamps kept in the session
const recordTimeLayout = "2006-01-02 15:04:05"

type IContactService interface {
	Submit(ctx context.Context, sess *store.Session, req *dto.ContactRequest) (*entity.ContactMessage, error)
	List(sess *store.Session) []entity.ContactMessage
}

type contactService struct {
	publisher IPublisherService
	now       func() time.Time
}

func NewContactService(publisher IPublisherService) IContactService {
	return &contactService{publisher: publisher, now: time.Now}
}

// Submit appends a validated contact request to the session and announces it.
func (s *contactService) Submit(ctx context.Context, sess *store.Session, req *dto.ContactRequest) (*entity.ContactMessage, error) {
	msg := entity.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Timestamp: s.now().Format(recordTimeLayout),
	}
	if err := store.Append(sess, store.KeyContacts, msg); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.TypeContactReceived, map[string]interface{}{
		"name":      msg.Name,
		"email":     msg.Email,
		"phone":     msg.Phone,
		"subject":   msg.Subject,
		"message":   msg.Message,
		"timestamp": msg.Timestamp,
	}))
	return &msg, nil
}

func (s *contactService) List(sess *store.Session) []entity.ContactMessage {
	return store.Get(sess, store.KeyContacts, []entity.ContactMessage(nil))
}
