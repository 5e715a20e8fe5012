package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuoteTotal(t *testing.T) {
	cases := []struct {
		name     string
		start    string
		end      string
		nightly  string
		discount string
		adults   int
		children int
		want     string
	}{
		{"three nights ten percent off", "2025-01-01", "2025-01-04", "100.00", "10", 2, 0, "270.00"},
		{"one night no discount", "2025-01-01", "2025-01-02", "50.00", "0", 1, 0, "50.00"},
		{"children only", "2025-03-10", "2025-03-12", "80.00", "0", 0, 2, "160.00"},
		{"fractional rate stays exact", "2025-06-01", "2025-06-04", "33.33", "0", 1, 1, "99.99"},
		{"half percent discount", "2025-06-01", "2025-06-03", "100.00", "0.5", 1, 0, "199.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, err := QuoteTotal(day(tc.start), day(tc.end),
				decimal.RequireFromString(tc.nightly), decimal.RequireFromString(tc.discount),
				tc.adults, tc.children)
			require.NoError(t, err)
			assert.True(t, total.Equal(decimal.RequireFromString(tc.want)),
				"got %s, want %s", total, tc.want)
		})
	}
}

func TestQuoteTotalRejectsBadDateRanges(t *testing.T) {
	nightly := decimal.RequireFromString("100.00")

	// Equal dates.
	_, err := QuoteTotal(day("2025-01-01"), day("2025-01-01"), nightly, decimal.Zero, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Reversed dates, regardless of other fields being valid.
	_, err = QuoteTotal(day("2025-01-04"), day("2025-01-01"), nightly, decimal.Zero, 2, 2)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestQuoteTotalGuestBounds(t *testing.T) {
	nightly := decimal.RequireFromString("100.00")
	start, end := day("2025-01-01"), day("2025-01-03")

	_, err := QuoteTotal(start, end, nightly, decimal.Zero, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidGuestCount)

	_, err = QuoteTotal(start, end, nightly, decimal.Zero, 51, 0)
	assert.ErrorIs(t, err, ErrInvalidGuestCount)

	_, err = QuoteTotal(start, end, nightly, decimal.Zero, 0, 51)
	assert.ErrorIs(t, err, ErrInvalidGuestCount)

	_, err = QuoteTotal(start, end, nightly, decimal.Zero, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidGuestCount)

	_, err = QuoteTotal(start, end, nightly, decimal.Zero, 1, 0)
	assert.NoError(t, err)

	// The boundary itself is allowed.
	_, err = QuoteTotal(start, end, nightly, decimal.Zero, 50, 50)
	assert.NoError(t, err)
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, Nights(start, end))
}
