package service

import (
	"context"
	"encoding/json"
	"time"

	"portfolio-web/internal/pkg/logger"
	"portfolio-web/pkg/events"
	pktNats "portfolio-web/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const mirrorTimeout = 2 * time.Second

type IPublisherService interface {
	// Publish never fails the caller's request; delivery problems are logged.
	Publish(ctx context.Context, event events.Event)
}

type publisherService struct {
	pubSub message.Publisher
	mirror *pktNats.Publisher
	logger logger.ILogger
}

// NewPublisherService publishes on the in-process bus and, when mirror is
// non-nil, forwards a copy to NATS.
func NewPublisherService(pubSub message.Publisher, mirror *pktNats.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{pubSub: pubSub, mirror: mirror, logger: log}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		s.logger.Error("Events", "Failed to marshal event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("occurred_at", event.Timestamp().Format(time.RFC3339))
	if err := s.pubSub.Publish(event.EventType(), msg); err != nil {
		s.logger.Error("Events", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}

	if s.mirror == nil {
		return
	}
	// The request context belongs to the HTTP server and is recycled after
	// the handler returns, so the mirror gets its own.
	mctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()
	if err := s.mirror.Publish(mctx, event); err != nil {
		s.logger.Warn("Events", "Failed to mirror event to NATS", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
