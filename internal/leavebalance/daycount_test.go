package leavebalance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInclusiveLeaveDays(t *testing.T) {
	t.Run("same day counts as one", func(t *testing.T) {
		assert.Equal(t, 1, InclusiveLeaveDays(day("2026-03-02"), day("2026-03-02")))
	})

	t.Run("adjacent days count as two", func(t *testing.T) {
		assert.Equal(t, 2, InclusiveLeaveDays(day("2026-03-02"), day("2026-03-03")))
	})

	t.Run("full week is seven days", func(t *testing.T) {
		assert.Equal(t, 7, InclusiveLeaveDays(day("2026-03-02"), day("2026-03-08")))
	})

	t.Run("partial day rounds up before the inclusive offset", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 3, 17, 0, 0, 0, time.UTC)
		// 32h -> ceil to 2 days, +1 inclusive.
		assert.Equal(t, 3, InclusiveLeaveDays(start, end))
	})
}
