package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf16"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// AdminUserID is the fixed identifier of the administrator session.
	AdminUserID = "admin-001"
	// MinPasswordLength is the shortest password login and register accept.
	MinPasswordLength = 6

	avatarBaseURL = "https://ui-avatars.com/api/"
)

// SessionService defines the session operations of a client.
type SessionService interface {
	Current(ctx context.Context, clientID string) (*models.User, error)
	Login(ctx context.Context, clientID, email, password string) (*models.User, error)
	Register(ctx context.Context, clientID, name, email, password string) (*models.User, error)
	Logout(ctx context.Context, clientID string) error
	UpdateUser(ctx context.Context, clientID string, updates models.UpdateUserRequest) (*models.User, error)
	IsAdmin(ctx context.Context, clientID string) (bool, error)
}

// SessionConfig holds the mock credential policy.
type SessionConfig struct {
	// Delay simulates the round trip of a remote login.
	Delay             time.Duration
	AdminEmail        string
	AdminPasswordHash []byte
}

type sessionServiceImpl struct {
	repo    repository.SessionRepository
	cfg     SessionConfig
	metrics aws_pkg.MetricsRecorder
	logger  *zap.Logger
	locks   *keyedMutex
	newID   func() string
}

// NewSessionService creates a new SessionService. metrics may be nil.
func NewSessionService(repo repository.SessionRepository, cfg SessionConfig, metrics aws_pkg.MetricsRecorder, logger *zap.Logger) SessionService {
	return &sessionServiceImpl{
		repo:    repo,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
		locks:   newKeyedMutex(),
		newID:   uuid.NewString,
	}
}

// Current restores the stored identity, or nil when there is none.
func (s *sessionServiceImpl) Current(ctx context.Context, clientID string) (*models.User, error) {
	user, err := s.repo.Load(ctx, clientID)
	if err != nil {
		return nil, s.storageError("load session", clientID, err)
	}
	return user, nil
}

// Login accepts the administrator credential pair, or any non-empty email
// with a password of at least MinPasswordLength characters.
func (s *sessionServiceImpl) Login(ctx context.Context, clientID, email, password string) (*models.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	var user *models.User
	switch {
	case s.isAdminCredential(email, password):
		user = &models.User{
			ID:             AdminUserID,
			Name:           "Admin",
			Email:          email,
			ProfilePicture: avatarURL("Admin"),
			IsAdmin:        true,
		}
	case email != "" && passwordLength(password) >= MinPasswordLength:
		name, _, _ := strings.Cut(email, "@")
		user = &models.User{
			ID:             s.newID(),
			Name:           name,
			Email:          email,
			ProfilePicture: avatarURL(name),
		}
	default:
		s.record(ctx, aws_pkg.MetricLoginFailures)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.save(ctx, clientID, user); err != nil {
		return nil, err
	}

	s.record(ctx, aws_pkg.MetricLogins)
	s.logger.Info("Session started", zap.String("client_id", clientID), zap.String("user_id", user.ID), zap.Bool("admin", user.IsAdmin))
	return user, nil
}

// Register accepts any non-empty name and email with a long enough password.
// Name and email are stored as given.
func (s *sessionServiceImpl) Register(ctx context.Context, clientID, name, email, password string) (*models.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if name == "" || email == "" || passwordLength(password) < MinPasswordLength {
		return nil, apperrors.ErrRegistrationFailed
	}

	user := &models.User{
		ID:             s.newID(),
		Name:           name,
		Email:          email,
		ProfilePicture: avatarURL(name),
	}
	if err := s.save(ctx, clientID, user); err != nil {
		return nil, err
	}

	s.record(ctx, aws_pkg.MetricRegistrations)
	s.logger.Info("Account registered", zap.String("client_id", clientID), zap.String("user_id", user.ID))
	return user, nil
}

// Logout removes the stored identity. Logging out without a session is fine.
func (s *sessionServiceImpl) Logout(ctx context.Context, clientID string) error {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	if err := s.repo.Delete(ctx, clientID); err != nil {
		return s.storageError("delete session", clientID, err)
	}
	return nil
}

// UpdateUser merges updates into the current identity. It returns nil, nil
// when the client has no session.
func (s *sessionServiceImpl) UpdateUser(ctx context.Context, clientID string, updates models.UpdateUserRequest) (*models.User, error) {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	user, err := s.repo.Load(ctx, clientID)
	if err != nil {
		return nil, s.storageError("load session", clientID, err)
	}
	if user == nil {
		return nil, nil
	}

	updates.Apply(user)
	if err := s.repo.Save(ctx, clientID, user); err != nil {
		return nil, s.storageError("save session", clientID, err)
	}
	return user, nil
}

func (s *sessionServiceImpl) IsAdmin(ctx context.Context, clientID string) (bool, error) {
	user, err := s.Current(ctx, clientID)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin, nil
}

func (s *sessionServiceImpl) isAdminCredential(email, password string) bool {
	if email != s.cfg.AdminEmail || len(s.cfg.AdminPasswordHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.cfg.AdminPasswordHash, []byte(password)) == nil
}

func (s *sessionServiceImpl) save(ctx context.Context, clientID string, user *models.User) error {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	if err := s.repo.Save(ctx, clientID, user); err != nil {
		return s.storageError("save session", clientID, err)
	}
	return nil
}

// wait blocks for the configured delay or until ctx is done.
func (s *sessionServiceImpl) wait(ctx context.Context) error {
	if s.cfg.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return apperrors.ErrServiceUnavailable.Wrap(ctx.Err())
	}
}

func (s *sessionServiceImpl) record(ctx context.Context, metric string) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	if err := s.metrics.RecordCount(ctx, metric, map[string]string{"Service": "storefront"}); err != nil {
		s.logger.Warn("Failed to record metric", zap.String("metric", metric), zap.Error(err))
	}
}

func (s *sessionServiceImpl) storageError(op, clientID string, err error) error {
	s.logger.Error("Session storage failure", zap.String("op", op), zap.String("client_id", clientID), zap.Error(err))
	if errors.Is(err, repository.ErrCorrupt) {
		return apperrors.ErrStorageCorrupt.Wrap(err)
	}
	return apperrors.ErrStorageUnavailable.Wrap(err)
}

// passwordLength counts UTF-16 code units, so a character outside the Basic
// Multilingual Plane counts twice.
func passwordLength(password string) int {
	return len(utf16.Encode([]rune(password)))
}

func avatarURL(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "06b6d4")
	q.Set("color", "fff")
	return avatarBaseURL + "?" + q.Encode()
}
