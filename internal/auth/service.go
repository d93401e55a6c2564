// Package auth registers and authenticates local accounts and manages the
// session record of the logged-in user.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/taskflow/internal/model"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Repository is the part of the persistence adapter the service needs.
type Repository interface {
	LoadUsers(ctx context.Context) (model.CredentialTable, error)
	SaveUsers(ctx context.Context, table model.CredentialTable) error
	LoadSession(ctx context.Context) (*model.User, error)
	SaveSession(ctx context.Context, user model.User) error
	ClearSession(ctx context.Context) error
}

// Service implements registration, login, logout and session restore.
type Service struct {
	repo   Repository
	hasher *PasswordHasher
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates an auth service.
func NewService(repo Repository, hasher *PasswordHasher, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates an account and logs it in. Checks run in order:
// password confirmation, password length, profile fields, duplicate email.
// Credential failures are reported with the errors of this package or a
// *model.ValidationError; nothing is stored in that case.
func (s *Service) Register(ctx context.Context, in model.RegisterInput) (model.User, error) {
	if in.Password != in.ConfirmPassword {
		return model.User{}, ErrPasswordMismatch
	}
	if len(in.Password) < MinPasswordLength {
		return model.User{}, ErrWeakPassword
	}
	if err := in.Validate(); err != nil {
		return model.User{}, err
	}

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("loading accounts: %w", err)
	}

	email := model.NormalizeEmail(in.Email)
	if _, exists := users[email]; exists {
		return model.User{}, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	users[email] = model.Credential{User: user, Password: hash}

	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return model.User{}, fmt.Errorf("saving accounts: %w", err)
	}
	if err := s.repo.SaveSession(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("saving session: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "email": email}).Info("account registered")
	return user, nil
}

// Login authenticates by email (case-insensitive) and password and records
// the session.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("loading accounts: %w", err)
	}

	cred, ok := users[model.NormalizeEmail(email)]
	if !ok {
		s.logger.WithField("email", model.NormalizeEmail(email)).Info("login for unknown account")
		return model.User{}, ErrAccountNotFound
	}
	if !s.hasher.Verify(password, cred.Password) {
		s.logger.WithField("user_id", cred.User.ID).Info("login with wrong password")
		return model.User{}, ErrWrongPassword
	}

	if err := s.repo.SaveSession(ctx, cred.User); err != nil {
		return model.User{}, fmt.Errorf("saving session: %w", err)
	}

	s.logger.WithField("user_id", cred.User.ID).Info("logged in")
	return cred.User, nil
}

// Logout ends the current session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.repo.ClearSession(ctx); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// Restore returns the user of a previous session, or nil when nobody is
// logged in.
func (s *Service) Restore(ctx context.Context) (*model.User, error) {
	user, err := s.repo.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	if user != nil {
		s.logger.WithField("user_id", user.ID).Debug("session restored")
	}
	return user, nil
}
