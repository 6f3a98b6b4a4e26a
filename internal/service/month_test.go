package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("")
	require.NoError(t, err)
	now := time.Now().UTC()
	assert.Equal(t, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("15.03.2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseMonth(t *testing.T) {
	got, err := parseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseMonth("")
	require.NoError(t, err)
	now := time.Now().UTC()
	assert.Equal(t, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseMonth("2024-3")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = parseMonth("march")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestMonthRange(t *testing.T) {
	start, end := monthRange(time.Date(2024, time.March, 17, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls over into the next year
	start, end = monthRange(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}
