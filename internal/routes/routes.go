package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/exercise-tracker/docs"
	"github.com/sbilibin2017/exercise-tracker/internal/handlers"
	"github.com/sbilibin2017/exercise-tracker/internal/middlewares"
)

// UserService is everything the user routes need.
type UserService interface {
	handlers.UserCreator
	handlers.UserLister
}

// ExerciseService is everything the exercise routes need.
type ExerciseService interface {
	handlers.ExerciseAdder
	handlers.LogReader
}

// NewRouter wires handlers, middlewares and the swagger UI onto a chi router.
func NewRouter(users UserService, exercises ExerciseService, checks map[string]handlers.PingFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Get("/healthz", handlers.NewHealthHandler(checks, time.Now()))

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", handlers.NewCreateUserHandler(users))
		r.Get("/", handlers.NewListUsersHandler(users))
		r.Post("/{id}/exercises", handlers.NewAddExerciseHandler(exercises))
		r.Get("/{id}/logs", handlers.NewGetLogHandler(exercises))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.NotFound(handlers.NewNotFoundHandler())
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method not allowed"}`))
	})

	return r
}
