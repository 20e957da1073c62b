package services

import (
	"fmt"
	"math"
	"time"

	"trip-planner-service/internal/domain"
)

// HOSRules holds the regulatory constants the scheduler enforces.
// They are passed in per planning run instead of living in package state so
// alternate rule sets can be exercised deterministically in tests.
type HOSRules struct {
	// Maximum driving hours within one duty period.
	MaxDrivingHours float64
	// Maximum on-duty window per duty period, measured wall-clock from the
	// first on-duty minute of the period.
	MaxDutyWindowHours float64
	// Cumulative driving hours that trigger a mandatory off-duty break.
	BreakAfterDrivingHours float64
	// Length of the mandatory off-duty break.
	BreakHours float64
	// Rolling-cycle cap (70-hour/8-day rule).
	MaxCycleHours float64
	// Minimum off-duty rest separating duty periods.
	MinRestHours float64
	// Driving miles between fuel stops.
	FuelIntervalMiles float64
	// Length of a fuel stop (on-duty, not driving).
	FuelStopHours float64
	// Length of one log day.
	LogDayHours float64
}

// DefaultHOSRules returns the 70-hour/8-day property-carrying ruleset.
func DefaultHOSRules() HOSRules {
	return HOSRules{
		MaxDrivingHours:        11,
		MaxDutyWindowHours:     14,
		BreakAfterDrivingHours: 8,
		BreakHours:             0.5,
		MaxCycleHours:          70,
		MinRestHours:           10,
		FuelIntervalMiles:      1000,
		FuelStopHours:          0.5,
		LogDayHours:            24,
	}
}

// Tolerance for cap comparisons. All hour and mile arithmetic stays in
// floating point; rounding happens only at display time.
const hoursEpsilon = 1e-9

// A segment on the elapsed-hours timeline, before day splitting.
type rawSegment struct {
	typ   domain.SegmentType
	start float64
	end   float64
}

// Mutable scheduler state for a single planning run. Initialized from the
// trip's starting cycle hours and discarded when the schedule is complete.
type cycleState struct {
	elapsed           float64
	cycleUsed         float64
	drivingInPeriod   float64
	windowElapsed     float64
	drivingSinceBreak float64
	milesSinceFuel    float64
	milesDriven       float64
	hoursDriven       float64
}

type scheduleBuilder struct {
	rules HOSRules
	state cycleState
	segs  []rawSegment
}

func (b *scheduleBuilder) emit(typ domain.SegmentType, hours float64) {
	b.segs = append(b.segs, rawSegment{
		typ:   typ,
		start: b.state.elapsed,
		end:   b.state.elapsed + hours,
	})
	b.state.elapsed += hours
}

// rest closes the current duty period. The rest runs until the next log-day
// boundary, never shorter than the configured minimum; with a 14-hour window
// and 24-hour days the boundary rest is always at least 10 hours, and every
// duty period stays inside a single log day.
func (b *scheduleBuilder) rest() {
	st := &b.state
	day := math.Floor(st.elapsed / b.rules.LogDayHours)
	restLen := (day+1)*b.rules.LogDayHours - st.elapsed
	if restLen < b.rules.MinRestHours {
		restLen = b.rules.MinRestHours
	}
	b.emit(domain.SegmentRest, restLen)
	st.drivingInPeriod = 0
	st.windowElapsed = 0
	// A 10+ hour rest also satisfies the 30-minute break requirement.
	st.drivingSinceBreak = 0
}

func (b *scheduleBuilder) cycleExceeded() *domain.CycleExceededError {
	return &domain.CycleExceededError{
		CycleHoursUsed: b.state.cycleUsed,
		MilesCompleted: b.state.milesDriven,
		HoursCompleted: b.state.hoursDriven,
	}
}

// onDuty emits a non-driving on-duty segment (pickup, fuel stop, dropoff).
// On-duty time consumes cycle hours and duty-window time but never driving
// time. If the segment no longer fits the duty window the period is closed
// first.
func (b *scheduleBuilder) onDuty(typ domain.SegmentType, hours float64) error {
	st := &b.state
	if st.cycleUsed+hours > b.rules.MaxCycleHours+hoursEpsilon {
		return b.cycleExceeded()
	}
	if st.windowElapsed > 0 && st.windowElapsed+hours > b.rules.MaxDutyWindowHours+hoursEpsilon {
		b.rest()
	}
	b.emit(typ, hours)
	st.windowElapsed += hours
	st.cycleUsed += hours
	return nil
}

// drive emits a driving segment and advances every counter it touches.
func (b *scheduleBuilder) drive(hours, milesPerHour float64) {
	st := &b.state
	b.emit(domain.SegmentDriving, hours)
	miles := hours * milesPerHour
	st.windowElapsed += hours
	st.drivingInPeriod += hours
	st.drivingSinceBreak += hours
	st.cycleUsed += hours
	st.milesSinceFuel += miles
	st.milesDriven += miles
	st.hoursDriven += hours
}

func (b *scheduleBuilder) fuelDue() bool {
	// A slightly looser tolerance absorbs mile arithmetic residue from
	// hour-to-mile conversion.
	return b.state.milesSinceFuel >= b.rules.FuelIntervalMiles-1e-6
}

// BuildSchedule converts a continuous route plus a starting cycle-hour balance
// into dated, typed activity segments partitioned into daily logs.
//
// The algorithm is a single greedy forward pass over the route's remaining
// duration. Before each driving increment the caps are checked in priority
// order (cycle > driving > window > break): cycle exhaustion is terminal, a
// duty-period close subsumes a pending break, and a break only pauses the
// clock. Fuel stops are inserted at the next on-duty slot after every completed
// fuel interval.
func BuildSchedule(
	route domain.Route,
	departAt time.Time,
	cycleHoursUsed float64,
	pickupHours float64,
	dropoffHours float64,
	rules HOSRules,
) ([]domain.DailyLog, error) {
	if route.DistanceMiles < 0 || route.DurationHours < 0 {
		return nil, fmt.Errorf("%w: route distance and duration must be non-negative", domain.ErrInvalidInput)
	}
	if route.DistanceMiles > 0 && route.DurationHours <= 0 {
		return nil, fmt.Errorf("%w: route with positive distance must have positive duration", domain.ErrInvalidInput)
	}
	if cycleHoursUsed < 0 || cycleHoursUsed > rules.MaxCycleHours {
		return nil, fmt.Errorf(
			"%w: cycle hours used must be within [0, %g], got %g",
			domain.ErrInvalidInput, rules.MaxCycleHours, cycleHoursUsed,
		)
	}
	if pickupHours < 0 || dropoffHours < 0 {
		return nil, fmt.Errorf("%w: pickup and dropoff durations must be non-negative", domain.ErrInvalidInput)
	}

	b := &scheduleBuilder{rules: rules}
	b.state.cycleUsed = cycleHoursUsed

	if pickupHours > 0 {
		if err := b.onDuty(domain.SegmentPickup, pickupHours); err != nil {
			return nil, err
		}
	}

	var milesPerHour float64
	if route.DurationHours > 0 {
		milesPerHour = route.DistanceMiles / route.DurationHours
	}

	remaining := route.DurationHours
	for remaining > hoursEpsilon {
		st := &b.state

		if st.cycleUsed >= rules.MaxCycleHours-hoursEpsilon {
			return nil, b.cycleExceeded()
		}
		if st.drivingInPeriod >= rules.MaxDrivingHours-hoursEpsilon ||
			st.windowElapsed >= rules.MaxDutyWindowHours-hoursEpsilon {
			b.rest()
			continue
		}
		if st.drivingSinceBreak >= rules.BreakAfterDrivingHours-hoursEpsilon {
			b.emit(domain.SegmentBreak, rules.BreakHours)
			st.windowElapsed += rules.BreakHours
			st.drivingSinceBreak = 0
			continue
		}
		if milesPerHour > 0 && b.fuelDue() {
			if err := b.onDuty(domain.SegmentFuelStop, rules.FuelStopHours); err != nil {
				return nil, err
			}
			st.milesSinceFuel -= rules.FuelIntervalMiles
			continue
		}

		chunk := remaining
		chunk = math.Min(chunk, rules.MaxDrivingHours-st.drivingInPeriod)
		chunk = math.Min(chunk, rules.MaxDutyWindowHours-st.windowElapsed)
		chunk = math.Min(chunk, rules.MaxCycleHours-st.cycleUsed)
		chunk = math.Min(chunk, rules.BreakAfterDrivingHours-st.drivingSinceBreak)
		if milesPerHour > 0 {
			chunk = math.Min(chunk, (rules.FuelIntervalMiles-st.milesSinceFuel)/milesPerHour)
		}
		if chunk <= hoursEpsilon {
			// Residue from the cap subtractions; the cap checks above will
			// resolve it on the next pass.
			continue
		}

		b.drive(chunk, milesPerHour)
		remaining -= chunk
	}

	// A fuel interval completed by the final driving chunk still gets its stop.
	if milesPerHour > 0 && b.fuelDue() {
		if err := b.onDuty(domain.SegmentFuelStop, rules.FuelStopHours); err != nil {
			return nil, err
		}
		b.state.milesSinceFuel -= rules.FuelIntervalMiles
	}

	if dropoffHours > 0 {
		if err := b.onDuty(domain.SegmentDropoff, dropoffHours); err != nil {
			return nil, err
		}
	}

	return splitByDay(b.segs, departAt, rules.LogDayHours), nil
}

// splitByDay partitions segments into daily logs at multiples of the log-day
// length from trip start. A segment spanning a boundary is split in two with
// the original type and proportional durations, so splitting preserves totals.
// The logs slice is grown day by day; no recursion, stack use is independent
// of trip length.
func splitByDay(segs []rawSegment, departAt time.Time, dayHours float64) []domain.DailyLog {
	logs := make([]domain.DailyLog, 0, 4)

	for _, s := range segs {
		start := s.start
		for start < s.end-hoursEpsilon {
			day := int(start / dayHours)
			boundary := float64(day+1) * dayHours
			end := math.Min(s.end, boundary)
			dur := end - start

			for len(logs) <= day {
				logs = append(logs, domain.DailyLog{Day: len(logs) + 1})
			}
			dayLog := &logs[day]

			dayLog.Segments = append(dayLog.Segments, domain.Segment{
				Type:          s.typ,
				Start:         hoursAfter(departAt, start),
				End:           hoursAfter(departAt, end),
				DurationHours: dur,
				Day:           day + 1,
			})
			switch {
			case s.typ.Driving():
				dayLog.DrivingHours += dur
			case s.typ.OnDuty():
				dayLog.OnDutyHours += dur
			default:
				dayLog.OffDutyHours += dur
			}

			start = end
		}
	}

	return logs
}

func hoursAfter(departAt time.Time, hours float64) time.Time {
	return departAt.Add(time.Duration(hours * float64(time.Hour)))
}
