package nats

import (
	"testing"

	"portfolio-web/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "portfolio.contact.received", Subject(events.TypeContactReceived))
	assert.Equal(t, "portfolio.resume.uploaded", Subject(events.TypeResumeUploaded))
}
