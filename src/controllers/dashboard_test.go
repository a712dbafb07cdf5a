package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDayUsesZoneMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	assert.Nil(t, err)

	// 01:30 local is still yesterday in UTC; the boundary must be local
	// midnight, not the UTC one.
	now := time.Date(2026, 8, 31, 1, 30, 0, 0, loc)
	assert.Equal(t, "2026-08-31T00:00:00-06:00", startOfDay(now))

	assert.Equal(t, "2026-08-31T00:00:00Z", startOfDay(time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)))
}
