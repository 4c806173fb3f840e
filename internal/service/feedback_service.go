package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"portfolio-web/internal/dto"
	"portfolio-web/internal/entity"
	"portfolio-web/internal/pkg/logger"
	"portfolio-web/pkg/events"
	"portfolio-web/pkg/store"
)

type IFeedbackService interface {
	Submit(ctx context.Context, sess *store.Session, req *dto.FeedbackRequest, attachment *multipart.FileHeader) (*entity.FeedbackEntry, error)
	List(sess *store.Session) []entity.FeedbackEntry
}

type feedbackService struct {
	uploads   IUploadService
	publisher IPublisherService
	logger    logger.ILogger
	now       func() time.Time
}

func NewFeedbackService(uploads IUploadService, publisher IPublisherService, log logger.ILogger) IFeedbackService {
	return &feedbackService{
		uploads:   uploads,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Submit records feedback. The attachment is optional; one that is missing
// or of a disallowed type is skipped and the feedback is still recorded.
func (s *feedbackService) Submit(ctx context.Context, sess *store.Session, req *dto.FeedbackRequest, attachment *multipart.FileHeader) (*entity.FeedbackEntry, error) {
	entry := entity.FeedbackEntry{
		Feedback:  req.Feedback,
		Rating:    req.Rating,
		Timestamp: s.now().Format(recordTimeLayout),
	}

	if attachment != nil && attachment.Filename != "" {
		record, err := s.uploads.Accept(ctx, attachment)
		switch {
		case err == nil:
			entry.Attachment = record.Filename
		case errors.Is(err, ErrInvalidFileType):
			s.logger.Warn("Feedback", "Skipping attachment with disallowed type", map[string]interface{}{
				"filename": attachment.Filename,
			})
		default:
			return nil, err
		}
	}

	if err := store.Append(sess, store.KeyFeedbacks, entry); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.New(events.TypeFeedbackReceived, map[string]interface{}{
		"feedback":   entry.Feedback,
		"rating":     entry.Rating,
		"attachment": entry.Attachment,
		"timestamp":  entry.Timestamp,
	}))
	return &entry, nil
}

func (s *feedbackService) List(sess *store.Session) []entity.FeedbackEntry {
	return store.Get(sess, store.KeyFeedbacks, []entity.FeedbackEntry(nil))
}
