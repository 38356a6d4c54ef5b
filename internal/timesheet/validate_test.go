package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/undocked/timekeep/internal/timesheet"
)

func TestValidateHours(t *testing.T) {
	valid := []float64{0.25, 0.5, 0.75, 1, 7.25, 8, 23.75, 24}
	for _, h := range valid {
		require.True(t, timesheet.ValidateHours(h), "hours %v should be valid", h)
	}

	invalid := []float64{0, -1, 0.1, 0.3, 1.126, 24.25, 25, 100}
	for _, h := range invalid {
		require.False(t, timesheet.ValidateHours(h), "hours %v should be invalid", h)
	}
}

func TestParseHours(t *testing.T) {
	h, err := timesheet.ParseHours(" 7.25 ")
	require.NoError(t, err)
	require.Equal(t, 7.25, h)

	for _, bad := range []string{"", "abc", "0", "0.3", "25"} {
		_, err := timesheet.ParseHours(bad)
		require.ErrorIs(t, err, timesheet.ErrInvalidHours, "input %q", bad)
	}
}

func TestValidateEmail(t *testing.T) {
	require.True(t, timesheet.ValidateEmail("ada@example.com"))
	require.True(t, timesheet.ValidateEmail("a.b+c@sub.example.co"))

	for _, bad := range []string{"", "ada", "ada@", "@example.com", "ada@example", "a b@example.com"} {
		require.False(t, timesheet.ValidateEmail(bad), "email %q", bad)
	}
}
