// Package services holds the domain rules that are worth keeping out
// of the request handlers, chiefly the booking pricing rule.
package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDateRange  = errors.New("end date must be after start date")
	ErrInvalidGuestCount = errors.New("invalid number of guests")
)

const maxGuests = 50

var (
	oneHundred = decimal.NewFromInt(100)
	one        = decimal.NewFromInt(1)
)

// Overlaps reports whether two half-open date ranges [aStart, aEnd)
// and [bStart, bEnd) intersect. Checkout day equals checkin day is not
// an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights returns the whole days between start and end.
func Nights(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

// QuoteTotal computes a booking's total price:
//
//	total = nightly * nights * (1 - discount/100)
//
// All arithmetic is decimal; the result is rounded to 2 fractional
// digits, matching the storage column. The quote runs once at booking
// creation and is never recomputed on update.
func QuoteTotal(start, end time.Time, nightly, discountPercent decimal.Decimal, adults, children int) (decimal.Decimal, error) {
	nights := Nights(start, end)
	if nights <= 0 {
		return decimal.Zero, ErrInvalidDateRange
	}

	if adults < 0 || adults > maxGuests || children < 0 || children > maxGuests {
		return decimal.Zero, ErrInvalidGuestCount
	}
	if adults == 0 && children == 0 {
		return decimal.Zero, ErrInvalidGuestCount
	}

	base := nightly.Mul(decimal.NewFromInt(int64(nights)))
	factor := one.Sub(discountPercent.Div(oneHundred))
	return base.Mul(factor).Round(2), nil
}
