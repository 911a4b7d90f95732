package services

//go:generate mockgen -source=exercise.go -destination=mock_exercise.go -package=services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/exercise-tracker/internal/logger"
	"github.com/sbilibin2017/exercise-tracker/internal/models"
)

// ExerciseWriter appends entries to a user's embedded log.
type ExerciseWriter interface {
	Append(ctx context.Context, userID string, exercise models.Exercise) (*models.UserDB, error) // Returns nil when the user is missing
}

// UserLogReader loads a full user document.
type UserLogReader interface {
	GetByID(ctx context.Context, userID string) (*models.UserDB, error) // Returns nil when the user is missing
}

// LogCache caches user documents between reads.
type LogCache interface {
	Get(ctx context.Context, userID string) (*models.UserDB, error) // Returns nil on a miss
	Set(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, userID string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ExerciseService appends exercises and serves filtered logs.
type ExerciseService struct {
	writer      ExerciseWriter
	reader      UserLogReader
	cache       LogCache
	kafkaWriter KafkaWriter
	timeout     time.Duration
	now         func() time.Time

	// stale holds ids whose cached document may predate their last append,
	// mapped to the generation that marked them.
	stale    sync.Map
	staleGen atomic.Uint64
}

// NewExerciseService creates a new ExerciseService. cache and kafkaWriter may be nil.
func NewExerciseService(
	writer ExerciseWriter,
	reader UserLogReader,
	cache LogCache,
	kafkaWriter KafkaWriter,
	timeout time.Duration,
) *ExerciseService {
	return &ExerciseService{
		writer:      writer,
		reader:      reader,
		cache:       cache,
		kafkaWriter: kafkaWriter,
		timeout:     timeout,
		now:         time.Now,
	}
}

func parseUserID(raw string) (string, error) {
	id := models.NormalizeUserID(raw)
	if !models.IsValidUserID(id) {
		return "", ErrInvalidID
	}
	return id, nil
}

// AddExercise validates the entry, appends it to the user's log and publishes an event.
// An empty date means today.
func (s *ExerciseService) AddExercise(
	ctx context.Context,
	userID, description string,
	duration float64,
	date string,
) (*models.ExerciseRecord, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, validationError("description is required")
	}
	if !storableText(description) {
		return nil, validationError("description contains invalid characters")
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return nil, validationError("duration must be a positive number of minutes")
	}

	day := models.NewDate(s.now())
	if strings.TrimSpace(date) != "" {
		if day, err = models.ParseDate(date); err != nil {
			return nil, validationError("%v", err)
		}
	}

	entry := models.Exercise{
		Description: description,
		Duration:    duration,
		Date:        day,
	}

	storeCtx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.writer.Append(storeCtx, id, entry)
	if err != nil {
		logger.Log.Errorw("failed to append exercise", "userID", id, "error", err)
		return nil, storeError("append exercise", err)
	}
	if user == nil {
		logger.Log.Warnw("append to unknown user", "userID", id)
		return nil, ErrNotFound
	}

	s.refreshCache(storeCtx, user)

	s.publishExercise(ctx, models.ExerciseEvent{
		EventID:     uuid.NewString(),
		Timestamp:   s.now().Unix(),
		UserID:      id,
		Description: entry.Description,
		Duration:    entry.Duration,
		Date:        entry.Date.String(),
	})

	return &models.ExerciseRecord{
		UserID:   user.UserID,
		Username: user.Username,
		Exercise: entry,
	}, nil
}

// GetLog returns the user's entries within [From, To], truncated to Limit when positive.
func (s *ExerciseService) GetLog(ctx context.Context, userID string, filter models.LogFilter) (*models.ExerciseLog, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	from := time.Unix(0, 0).UTC()
	if filter.From != nil {
		from = *filter.From
	}
	to := s.now()
	if filter.To != nil {
		to = *filter.To
	}

	entries := make([]models.Exercise, 0, len(user.Logs))
	for _, e := range user.Logs {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		entries = append(entries, e)
		if filter.Limit > 0 && len(entries) == filter.Limit {
			break
		}
	}

	return &models.ExerciseLog{
		UserID:   user.UserID,
		Username: user.Username,
		Log:      entries,
	}, nil
}

// refreshCache replaces the cached document with the one an append returned.
// If the cache can be neither updated nor cleared, the id is marked stale and
// reads skip the cache until a store read repopulates it.
func (s *ExerciseService) refreshCache(ctx context.Context, user *models.UserDB) {
	if s.cache == nil {
		return
	}
	err := s.cache.Set(ctx, user)
	if err == nil {
		return
	}
	logger.Log.Warnw("failed to refresh cached log", "userID", user.UserID, "error", err)

	if err := s.cache.Delete(ctx, user.UserID); err != nil {
		logger.Log.Warnw("failed to invalidate cached log", "userID", user.UserID, "error", err)
		s.stale.Store(user.UserID, s.staleGen.Add(1))
	}
}

// loadUser reads through the cache. Cache failures fall back to the store.
func (s *ExerciseService) loadUser(ctx context.Context, id string) (*models.UserDB, error) {
	ctx, cancel := withStoreTimeout(ctx, s.timeout)
	defer cancel()

	gen, stale := s.stale.Load(id)
	if s.cache != nil && !stale {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Log.Warnw("log cache read failed", "userID", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to load user", "userID", id, "error", err)
		return nil, storeError("load user", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			logger.Log.Warnw("log cache write failed", "userID", id, "error", err)
		} else if stale {
			s.stale.CompareAndDelete(id, gen)
		}
	}
	return user, nil
}

// publishExercise publishes an exercise event to Kafka.
func (s *ExerciseService) publishExercise(ctx context.Context, event models.ExerciseEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal exercise event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish exercise event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Exercise event published to Kafka", "event_id", event.EventID, "user_id", event.UserID)
	}
}
