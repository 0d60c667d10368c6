package testutil

import (
	"time"

	"github.com/light-bringer/carcat-service/internal/pkg/clock"
)

// FixtureNow is the instant integration fixtures are dated against.
var FixtureNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t)
}
