package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellobooks-backend/internal/shared/dates"
)

func TestParse_ValidDate(t *testing.T) {
	got, err := dates.Parse("15/06/2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 15, got.Day())
}

func TestParse_RejectsMalformedDates(t *testing.T) {
	cases := []string{
		"",
		"2024-06-15",  // wrong separator and order
		"15-06-2024",  // wrong separator
		"31/02/2024",  // impossible calendar date
		"31-02-2024",  // impossible and wrong separator
		"1/6/2024",    // missing zero padding
		"15/06/24",    // two-digit year
		"not-a-date",
	}
	for _, c := range cases {
		_, err := dates.Parse(c)
		assert.ErrorIs(t, err, dates.ErrInvalidDate, "input %q", c)
		assert.False(t, dates.Valid(c), "input %q", c)
	}
}

func TestFormat_RoundTrips(t *testing.T) {
	in := time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC)
	s := dates.Format(in)
	assert.Equal(t, "03/12/2024", s)

	back, err := dates.Parse(s)
	require.NoError(t, err)
	assert.True(t, back.Equal(in))
}

func TestWithinPeriod(t *testing.T) {
	now := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

	onBound := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC) // now + 40 days
	inside := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2024, time.April, 11, 0, 0, 0, 0, time.UTC)
	farOut := time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, dates.WithinPeriod(onBound, now, 40), "bound itself is allowed")
	assert.True(t, dates.WithinPeriod(inside, now, 40))
	assert.False(t, dates.WithinPeriod(outside, now, 40))
	assert.False(t, dates.WithinPeriod(farOut, now, 40))
}
