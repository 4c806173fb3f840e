package service

import (
	"context"
	"fmt"

	"portfolio-web/internal/dto"
	"portfolio-web/internal/entity"
	"portfolio-web/internal/pkg/logger"
	"portfolio-web/pkg/store"

	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, sess *store.Session, req *dto.LoginRequest) error
	Logout(ctx context.Context, sess *store.Session) string
	CurrentUser(sess *store.Session) (string, bool)
	Dashboard(ctx context.Context, sess *store.Session) (*dto.DashboardResponse, error)
}

// authService implements the demo login: any username together with the
// single shared password opens a session. There is no user store.
type authService struct {
	passwordHash []byte
	logger       logger.ILogger
}

func NewAuthService(sharedPassword string, log logger.ILogger) (IAuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(sharedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash shared password: %w", err)
	}
	return &authService{passwordHash: hash, logger: log}, nil
}

func (s *authService) Login(ctx context.Context, sess *store.Session, req *dto.LoginRequest) error {
	if req.Username == "" || req.Password == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		s.logger.Warn("Auth", "Failed login attempt", map[string]interface{}{"username": req.Username})
		return ErrInvalidCredentials
	}

	if err := sess.Set(store.KeyUser, req.Username); err != nil {
		return err
	}
	if req.Remember != "" {
		sess.SetPermanent(true)
	}

	s.logger.Info("Auth", "User logged in", map[string]interface{}{
		"username": req.Username,
		"remember": req.Remember != "",
	})
	return nil
}

// Logout wipes the whole session and returns the name that was logged in,
// or "User" when nobody was.
func (s *authService) Logout(ctx context.Context, sess *store.Session) string {
	user := store.Get(sess, store.KeyUser, "User")
	sess.Clear()
	s.logger.Info("Auth", "Session cleared", map[string]interface{}{"username": user})
	return user
}

func (s *authService) CurrentUser(sess *store.Session) (string, bool) {
	user := store.Get(sess, store.KeyUser, "")
	return user, user != ""
}

func (s *authService) Dashboard(ctx context.Context, sess *store.Session) (*dto.DashboardResponse, error) {
	user, ok := s.CurrentUser(sess)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return &dto.DashboardResponse{
		User:          user,
		Visits:        store.Get(sess, store.KeyVisits, 0),
		Contacts:      store.Get(sess, store.KeyContacts, []entity.ContactMessage(nil)),
		Feedbacks:     store.Get(sess, store.KeyFeedbacks, []entity.FeedbackEntry(nil)),
		UploadedFiles: store.Get(sess, store.KeyUploadedFiles, []entity.FileRecord(nil)),
	}, nil
}
