package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint", day("2030-03-01"), day("2030-03-03"), day("2030-03-05"), day("2030-03-08"), false},
		{"touching checkout equals checkin", day("2030-03-01"), day("2030-03-05"), day("2030-03-05"), day("2030-03-08"), false},
		{"touching the other way", day("2030-03-05"), day("2030-03-08"), day("2030-03-01"), day("2030-03-05"), false},
		{"partial overlap", day("2030-03-01"), day("2030-03-05"), day("2030-03-04"), day("2030-03-08"), true},
		{"partial overlap reversed", day("2030-03-04"), day("2030-03-08"), day("2030-03-01"), day("2030-03-05"), true},
		{"contained", day("2030-03-01"), day("2030-03-10"), day("2030-03-03"), day("2030-03-05"), true},
		{"containing", day("2030-03-03"), day("2030-03-05"), day("2030-03-01"), day("2030-03-10"), true},
		{"identical", day("2030-03-02"), day("2030-03-06"), day("2030-03-02"), day("2030-03-06"), true},
		{"one night inside", day("2030-03-03"), day("2030-03-04"), day("2030-03-01"), day("2030-03-10"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}
