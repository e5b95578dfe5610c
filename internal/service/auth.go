package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwellhq/inkwell-server/internal/apperr"
	"github.com/inkwellhq/inkwell-server/internal/logger"
	"github.com/inkwellhq/inkwell-server/internal/model"
)

// Auth implements registration, login and session lifecycle.
type Auth struct {
	userStore    model.UserStore
	sessionStore model.SessionStore
	sessionTTL   time.Duration
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	sessionStore model.SessionStore,
	sessionTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
		logger:       logger,
	}
}

// Register creates a new account. The username check runs before the email
// check, and each is its own query; both must independently pass.
func (a *Auth) Register(ctx context.Context, username, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: starting registration",
		"username", username)

	_, err := a.userStore.GetByUsername(ctx, username)
	if err == nil {
		a.logger.Info("Auth service: username already taken",
			"username", username)
		return model.User{}, apperr.NewUsernameTaken(username)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	_, err = a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: email already registered",
			"username", username)
		return model.User{}, apperr.NewEmailTaken(email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	user, err = a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: registration completed",
		"username", username,
		"user_id", user.ID)

	return user, nil
}

// Login verifies credentials by email and establishes a session.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	a.logger.Debug("Auth service: starting login")

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, apperr.NewUserNotFound(email)
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"username", user.Username)
		return model.Session{}, apperr.NewInvalidPassword()
	}

	session := model.Session{
		Token:     uuid.New(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: time.Now().Add(a.sessionTTL),
	}

	if err := a.sessionStore.Create(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"username", user.Username,
		"user_id", user.ID)

	return session, nil
}

// Logout destroys the session. A token with no session is not an error, so
// logging out twice stays a no-op.
func (a *Auth) Logout(ctx context.Context, token uuid.UUID) error {
	if err := a.sessionStore.Delete(ctx, token); err != nil {
		a.logger.Error("Auth service: failed to destroy session",
			"error", err.Error())
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// CurrentUser resolves a session token to its live session. This is the sole
// gating predicate for every protected route.
func (a *Auth) CurrentUser(ctx context.Context, token uuid.UUID) (model.Session, error) {
	session, err := a.sessionStore.Get(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}
