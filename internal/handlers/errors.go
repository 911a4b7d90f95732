package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/sbilibin2017/exercise-tracker/internal/logger"
	"github.com/sbilibin2017/exercise-tracker/internal/middlewares"
	"github.com/sbilibin2017/exercise-tracker/internal/services"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: user not found
	Error string `json:"error"`
}

var validate = newValidator()

// newValidator reports fields by their json names. The nonul tag rejects
// strings Postgres cannot store in text or JSONB columns.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// writeServiceError maps service sentinels to status codes. Store failures are logged, not echoed.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		writeBadRequest(w, services.ErrInvalidID.Error())
	case errors.Is(err, services.ErrValidation):
		writeBadRequest(w, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: services.ErrNotFound.Error()})
	case errors.Is(err, services.ErrDuplicate):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: services.ErrDuplicate.Error()})
	default:
		logger.Log.Errorw("internal server error",
			"request_id", middlewares.RequestIDFromContext(r.Context()),
			"err", err,
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// validationMessage renders the first failed field of a validator error.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "datetime":
		return fe.Field() + " must be a date in yyyy-mm-dd format"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "nonul":
		return fe.Field() + " contains invalid characters"
	default:
		return fe.Field() + " is invalid"
	}
}
