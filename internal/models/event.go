package models

// ExerciseEvent is published each time an exercise is appended to a user's log.
type ExerciseEvent struct {
	EventID     string  `json:"event_id"`    // EventID is a unique identifier for the event.
	Timestamp   int64   `json:"timestamp"`   // Timestamp is the Unix time (seconds) the entry was recorded.
	UserID      string  `json:"user_id"`     // UserID owns the log the entry was appended to.
	Description string  `json:"description"` // Description of the exercise.
	Duration    float64 `json:"duration"`    // Duration in minutes.
	Date        string  `json:"date"`        // Date of the exercise, yyyy-mm-dd.
}
