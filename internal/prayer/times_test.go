package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.Local)
}

func TestTimeFor(t *testing.T) {
	canonical, ok := TimeFor(model.PrayerDzuhur, at(9, 0))
	require.True(t, ok)
	assert.Equal(t, at(12, 0), canonical)

	_, ok = TimeFor("Tahajud", at(9, 0))
	assert.False(t, ok)
}

func TestIsLate(t *testing.T) {
	// Inside the tolerance window.
	assert.False(t, IsLate(model.PrayerDzuhur, at(12, 10)))
	assert.False(t, IsLate(model.PrayerDzuhur, at(12, 15)))
	// Past it.
	assert.True(t, IsLate(model.PrayerDzuhur, at(12, 16)))
	// Logging before the canonical time is never late.
	assert.False(t, IsLate(model.PrayerMaghrib, at(17, 30)))
	// Unknown prayers are never late.
	assert.False(t, IsLate("Tahajud", at(23, 0)))
}
