package handlers

//go:generate mockgen -source=exercises.go -destination=mock_exercises.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/exercise-tracker/internal/models"
)

// ExerciseAdder appends an exercise to a user's log.
type ExerciseAdder interface {
	AddExercise(ctx context.Context, userID, description string, duration float64, date string) (*models.ExerciseRecord, error)
}

// AddExerciseRequest represents the body for adding an exercise
// swagger:model AddExerciseRequest
type AddExerciseRequest struct {
	// What was done
	// required: true
	// default: run
	Description string `json:"description" validate:"required,nonul"`

	// Minutes, a number or numeric string
	// required: true
	// default: 30
	Duration json.Number `json:"duration" validate:"required" swaggertype:"number"`

	// Calendar date, yyyy-mm-dd. Defaults to today.
	// default: 2023-01-15
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ExerciseResponse echoes the stored exercise
// swagger:model ExerciseResponse
type ExerciseResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Date        string  `json:"date" example:"Sun Jan 15 2023"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

// NewAddExerciseHandler returns an HTTP handler that appends an exercise to a user's log.
// @Summary Add an exercise
// @Description Appends an exercise to the user's log. Accepts JSON or url-encoded form bodies.
// @Tags exercises
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "User id"
// @Param addExerciseRequest body handlers.AddExerciseRequest true "Exercise"
// @Success 200 {object} handlers.ExerciseResponse "Exercise stored"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id, body or date"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{id}/exercises [post]
func NewAddExerciseHandler(svc ExerciseAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddExerciseRequest

		if isFormRequest(r) {
			req.Description = r.PostFormValue("description")
			req.Duration = json.Number(strings.TrimSpace(r.PostFormValue("duration")))
			req.Date = strings.TrimSpace(r.PostFormValue("date"))
		} else if err := decodeJSON(w, r, &req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}

		if err := validate.Struct(req); err != nil {
			writeBadRequest(w, validationMessage(err))
			return
		}

		duration, err := req.Duration.Float64()
		if err != nil {
			writeBadRequest(w, "duration must be a number")
			return
		}

		rec, err := svc.AddExercise(r.Context(), chi.URLParam(r, "id"), req.Description, duration, req.Date)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ExerciseResponse{
			ID:          rec.UserID,
			Username:    rec.Username,
			Date:        rec.Exercise.Date.Display(),
			Duration:    rec.Exercise.Duration,
			Description: rec.Exercise.Description,
		})
	}
}
