package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date layouts
const (
	DateLayout        = "2006-01-02"      // request and storage format
	DisplayDateLayout = "Mon Jan 02 2006" // response format
)

// Date is a calendar date at day precision, always in UTC.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	t = t.UTC()
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a yyyy-mm-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%q is not a valid date, expected yyyy-mm-dd", s)
	}
	return NewDate(t), nil
}

// String returns the yyyy-mm-dd form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Display returns the human-readable form used in API responses.
func (d Date) Display() string {
	return d.Format(DisplayDateLayout)
}

// MarshalJSON encodes the date as yyyy-mm-dd.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a yyyy-mm-dd string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
