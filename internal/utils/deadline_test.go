package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDeadline_SameInstant(t *testing.T) {
	want := time.Date(2024, time.September, 12, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"2024-09-12",
		"2024-09-12T00:00:00Z",
		"2024-09-12T00:00:00.000Z",
		"2024-09-12T03:00:00+03:00",
		"2024-09-12T00:00:00",
		" 2024-09-12 ",
	} {
		got, err := ParseDeadline(input)
		require.NoError(t, err, input)
		require.True(t, want.Equal(got), "%s parsed to %s", input, got)
		require.Equal(t, time.UTC, got.Location())
	}
}

func TestParseDeadline_KeepsTimeOfDay(t *testing.T) {
	got, err := ParseDeadline("2024-09-12T15:30:00.250Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.September, 12, 15, 30, 0, 250_000_000, time.UTC), got)
}

func TestParseDeadline_Invalid(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "2024-13-01", "12/09/2024"} {
		_, err := ParseDeadline(input)
		require.ErrorIs(t, err, ErrInvalidDeadline, input)
	}

	_, err := ParseDeadline("tomorrow")
	require.EqualError(t, err, `invalid deadline: "tomorrow"`)
}
