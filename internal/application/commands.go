package application

import (
	"time"

	"github.com/bnema/zprov/internal/domain"
)

const DefaultUserCount int64 = 10

type ProvisionCommand struct {
	Plan      domain.Plan
	UserCount int64
	// RequestedStart and RequestedEnd are recorded and compared with the plan's contract
	// window. Phase boundaries always come from the plan.
	RequestedStart time.Time
	RequestedEnd   time.Time
}

// DefaultRequestedWindow returns the window historically passed alongside the default plan.
func DefaultRequestedWindow() (time.Time, time.Time) {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)
}
