package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrailingDays(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 45, 0, 0, time.UTC)

	w := TrailingDays(now, 30)

	assert.Equal(t, time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, now, w.To)
}

func TestTrailingDays_KeepsLocation(t *testing.T) {
	cairo := time.FixedZone("EET", 2*60*60)
	now := time.Date(2026, 3, 1, 1, 0, 0, 0, cairo)

	w := TrailingDays(now, 30)

	assert.Equal(t, time.Date(2026, 1, 30, 0, 0, 0, 0, cairo), w.From)
}
