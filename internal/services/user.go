package services

//go:generate mockgen -source=user.go -destination=mock_user.go -package=services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sbilibin2017/exercise-tracker/internal/logger"
	"github.com/sbilibin2017/exercise-tracker/internal/models"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, userID string, username string) error
}

// UserService creates and lists users.
type UserService struct {
	reader  UserReader
	writer  UserWriter
	timeout time.Duration
	newID   func() string
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, timeout time.Duration) *UserService {
	return &UserService{
		reader:  reader,
		writer:  writer,
		timeout: timeout,
		newID:   models.NewUserID,
	}
}

// CreateUser persists a new user with an empty log. Usernames are unique.
func (svc *UserService) CreateUser(ctx context.Context, username string) (*models.UserDB, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("username is required")
	}
	if utf8.RuneCountInString(username) > models.MaxUsernameLength {
		return nil, validationError("username must be at most %d characters", models.MaxUsernameLength)
	}
	if !storableText(username) {
		return nil, validationError("username contains invalid characters")
	}

	ctx, cancel := withStoreTimeout(ctx, svc.timeout)
	defer cancel()

	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "username", username, "err", err)
		return nil, storeError("check username", err)
	}
	if existing != nil {
		logger.Log.Warnw("user already exists", "username", username)
		return nil, ErrDuplicate
	}

	user := &models.UserDB{
		UserID:    svc.newID(),
		Username:  username,
		Logs:      models.Exercises{},
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.writer.Save(ctx, user.UserID, user.Username); err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			logger.Log.Warnw("user created concurrently", "username", username)
			return nil, ErrDuplicate
		}
		logger.Log.Errorw("failed to save user", "username", username, "err", err)
		return nil, storeError("save user", err)
	}

	logger.Log.Infow("user created", "user_id", user.UserID, "username", user.Username)
	return user, nil
}

// ListUsers returns every user without their logs.
func (svc *UserService) ListUsers(ctx context.Context) ([]models.UserDB, error) {
	ctx, cancel := withStoreTimeout(ctx, svc.timeout)
	defer cancel()

	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, storeError("list users", err)
	}
	return users, nil
}
