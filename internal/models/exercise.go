package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Exercise is a single log entry embedded in a user document.
type Exercise struct {
	Description string  `json:"description"` // What was done
	Duration    float64 `json:"duration"`    // Minutes
	Date        Date    `json:"date"`        // Calendar date of the exercise
}

// Exercises is the embedded log of a user, stored as a JSONB array.
type Exercises []Exercise

// Value implements driver.Valuer.
func (e Exercises) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (e *Exercises) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*e = Exercises{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for exercises", src)
	}
	var out Exercises
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out == nil {
		out = Exercises{}
	}
	*e = out
	return nil
}

// ExerciseRecord is the result of appending an exercise to a user's log.
type ExerciseRecord struct {
	UserID   string
	Username string
	Exercise Exercise
}

// LogFilter narrows a log read. Nil bounds mean epoch and now.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ExerciseLog is a filtered view of a user's log.
type ExerciseLog struct {
	UserID   string
	Username string
	Log      []Exercise
}

// Count returns the number of entries in the view.
func (l *ExerciseLog) Count() int {
	return len(l.Log)
}
