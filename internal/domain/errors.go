package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks trip requests rejected before scheduling begins.
var ErrInvalidInput = errors.New("invalid input")

// CycleExceededError reports that the 70-hour cycle cap would be violated
// before the route completes. It is a domain-level outcome, not a crash: the
// trip is legally infeasible under the current cycle hours without a cycle
// reset, which this planner does not model. The exhaustion point tells the
// caller how far the driver can legally get.
type CycleExceededError struct {
	CycleHoursUsed float64
	MilesCompleted float64
	HoursCompleted float64
}

func (e *CycleExceededError) Error() string {
	return fmt.Sprintf(
		"cycle capacity exceeded: %.1f cycle hours consumed after %.1f miles (%.1f driving hours); trip requires a cycle reset",
		e.CycleHoursUsed, e.MilesCompleted, e.HoursCompleted,
	)
}
