package store

import (
	"encoding/json"
	"fmt"
)

// Well-known session keys
const (
	KeyVisits        = "visits"
	KeyUser          = "user"
	KeyContacts      = "contacts"
	KeyFeedbacks     = "feedbacks"
	KeyUploadedFiles = "uploaded_files"

	keyFlashes = "_flashes"
)

// Flash categories, matching the CSS classes used by the templates
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-time notice shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the per-visitor key/value record. Values are kept as raw JSON
// so any backend can persist the session as an opaque blob.
//
// A Session is owned by a single request; it is not safe for concurrent use.
type Session struct {
	ID        string                     `json:"id,omitempty"`
	Values    map[string]json.RawMessage `json:"values"`
	Permanent bool                       `json:"permanent,omitempty"`

	modified bool
	cleared  bool
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Values: make(map[string]json.RawMessage),
	}
}

// Decode rebuilds a session from a blob produced by Encode.
func Decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Values == nil {
		s.Values = make(map[string]json.RawMessage)
	}
	return &s, nil
}

func (s *Session) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Modified reports whether anything changed since the session was loaded.
func (s *Session) Modified() bool {
	return s.modified
}

// Cleared reports whether Clear was called during this request.
func (s *Session) Cleared() bool {
	return s.cleared
}

func (s *Session) IsEmpty() bool {
	return len(s.Values) == 0
}

func (s *Session) Has(key string) bool {
	_, ok := s.Values[key]
	return ok
}

func (s *Session) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session set %q: %w", key, err)
	}
	s.Values[key] = raw
	s.modified = true
	return nil
}

func (s *Session) Delete(key string) {
	if _, ok := s.Values[key]; !ok {
		return
	}
	delete(s.Values, key)
	s.modified = true
}

// Clear drops every value, including identity and history.
func (s *Session) Clear() {
	s.Values = make(map[string]json.RawMessage)
	s.Permanent = false
	s.modified = true
	s.cleared = true
}

func (s *Session) SetPermanent(permanent bool) {
	if s.Permanent == permanent {
		return
	}
	s.Permanent = permanent
	s.modified = true
}

func (s *Session) Flash(category, message string) {
	// Append only fails on marshal errors, impossible for Flash.
	_ = Append(s, keyFlashes, Flash{Category: category, Message: message})
}

// PopFlashes returns pending flashes and removes them from the session.
func (s *Session) PopFlashes() []Flash {
	flashes := Get(s, keyFlashes, []Flash(nil))
	s.Delete(keyFlashes)
	return flashes
}

// Get decodes the value stored under key, or returns def when the key is
// absent or holds a value of another shape.
func Get[T any](s *Session, key string, def T) T {
	raw, ok := s.Values[key]
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}

// Append adds value to the list stored under key, creating the list if needed.
func Append[T any](s *Session, key string, value T) error {
	list := Get(s, key, []T(nil))
	list = append(list, value)
	return s.Set(key, list)
}
