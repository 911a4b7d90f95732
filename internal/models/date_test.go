package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		display string
		wantErr bool
	}{
		{in: "2023-01-15", want: "2023-01-15", display: "Sun Jan 15 2023"},
		{in: " 2024-02-29 ", want: "2024-02-29", display: "Thu Feb 29 2024"},
		{in: "not-a-date", wantErr: true},
		{in: "2023-02-30", wantErr: true},
		{in: "15/01/2023", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
			assert.Equal(t, tt.display, d.Display())
			assert.Equal(t, time.UTC, d.Location())
		})
	}
}

func TestNewDate_TruncatesToUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	d := NewDate(time.Date(2023, 1, 16, 3, 30, 0, 0, loc))

	assert.Equal(t, "2023-01-15", d.String())
	assert.Zero(t, d.Hour())
}

func TestDate_JSON(t *testing.T) {
	d, err := ParseDate("2023-01-15")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2023-01-15"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back.Time))

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`42`), &back))
}
