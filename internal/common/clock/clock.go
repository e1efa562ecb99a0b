package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/secretsanta/internal/common/clock Clock

// Clock supplies the current time to services that stamp draws, reveals and phase changes
type Clock interface {
	Now() time.Time
}

// UTCClock implements Clock using the system clock normalized to UTC
type UTCClock struct{}

// New returns the system clock
func New() *UTCClock {
	return &UTCClock{}
}

// Now returns the current time in UTC
func (c *UTCClock) Now() time.Time {
	return time.Now().UTC()
}
