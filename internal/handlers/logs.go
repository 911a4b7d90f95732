package handlers

//go:generate mockgen -source=logs.go -destination=mock_logs.go -package=handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/exercise-tracker/internal/models"
)

// LogReader returns a filtered view of a user's log.
type LogReader interface {
	GetLog(ctx context.Context, userID string, filter models.LogFilter) (*models.ExerciseLog, error)
}

// LogEntryResponse is a single exercise in a log
// swagger:model LogEntryResponse
type LogEntryResponse struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date" example:"Sun Jan 15 2023"`
}

// ExerciseLogResponse is a user's filtered exercise log
// swagger:model ExerciseLogResponse
type ExerciseLogResponse struct {
	ID       string             `json:"id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []LogEntryResponse `json:"log"`
}

// NewGetLogHandler returns an HTTP handler for reading a user's exercise log.
// @Summary Get exercise log
// @Description Returns the user's exercises dated within [from, to], in stored order, truncated to limit.
// @Tags exercises
// @Produce json
// @Param id path string true "User id"
// @Param from query string false "Earliest date, yyyy-mm-dd"
// @Param to query string false "Latest date, yyyy-mm-dd"
// @Param limit query int false "Maximum number of entries, non-positive means all"
// @Success 200 {object} handlers.ExerciseLogResponse "Exercise log"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id or date"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{id}/logs [get]
func NewGetLogHandler(svc LogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, msg := parseLogFilter(r)
		if msg != "" {
			writeBadRequest(w, msg)
			return
		}

		log, err := svc.GetLog(r.Context(), chi.URLParam(r, "id"), filter)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		entries := make([]LogEntryResponse, 0, len(log.Log))
		for _, e := range log.Log {
			entries = append(entries, LogEntryResponse{
				Description: e.Description,
				Duration:    e.Duration,
				Date:        e.Date.Display(),
			})
		}

		writeJSON(w, http.StatusOK, ExerciseLogResponse{
			ID:       log.UserID,
			Username: log.Username,
			Count:    log.Count(),
			Log:      entries,
		})
	}
}

// parseLogFilter reads from, to and limit. A non-empty message means a date is malformed.
// A limit that is absent, not a number or not positive returns every matching entry.
func parseLogFilter(r *http.Request) (models.LogFilter, string) {
	var filter models.LogFilter
	q := r.URL.Query()

	parse := func(key string) (*time.Time, string) {
		raw := q.Get(key)
		if raw == "" {
			return nil, ""
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			return nil, key + " must be a date in yyyy-mm-dd format"
		}
		return &d.Time, ""
	}

	var msg string
	if filter.From, msg = parse("from"); msg != "" {
		return filter, msg
	}
	if filter.To, msg = parse("to"); msg != "" {
		return filter, msg
	}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	return filter, ""
}
