package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/exercise-tracker/internal/logger"
	"github.com/sbilibin2017/exercise-tracker/internal/models"
)

// ExerciseWriteRepository appends entries to the embedded user log.
type ExerciseWriteRepository struct {
	db *sqlx.DB
}

func NewExerciseWriteRepository(db *sqlx.DB) *ExerciseWriteRepository {
	return &ExerciseWriteRepository{db: db}
}

// Append adds the entry to the end of the user's log in a single statement,
// so concurrent appends to one user never overwrite each other.
// It returns the updated user document, or nil if the user does not exist.
func (r *ExerciseWriteRepository) Append(ctx context.Context, userID string, exercise models.Exercise) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET logs = logs || jsonb_build_array($2::jsonb)
		WHERE user_id = $1
		RETURNING user_id, username, logs, created_at
	`

	payload, err := json.Marshal(exercise)
	if err != nil {
		return nil, err
	}

	var user models.UserDB
	err = r.db.GetContext(ctx, &user, query, userID, string(payload))

	logger.Log.Infow("db query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, string(payload)},
		"result", len(user.Logs),
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
