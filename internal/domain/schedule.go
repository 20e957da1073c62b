package domain

import "time"

// Duty status of a single log segment.
type SegmentType string

const (
	SegmentPickup   SegmentType = "ON_DUTY_PICKUP"
	SegmentDriving  SegmentType = "DRIVING"
	SegmentBreak    SegmentType = "OFF_DUTY_BREAK"
	SegmentFuelStop SegmentType = "FUEL_STOP"
	SegmentDropoff  SegmentType = "ON_DUTY_DROPOFF"
	SegmentRest     SegmentType = "OFF_DUTY_REST"
)

// Driving reports whether segments of this type accrue driving hours.
func (s SegmentType) Driving() bool { return s == SegmentDriving }

// OnDuty reports whether segments of this type accrue on-duty (non-driving)
// hours. Driving is accounted separately.
func (s SegmentType) OnDuty() bool {
	return s == SegmentPickup || s == SegmentDropoff || s == SegmentFuelStop
}

// OffDuty reports whether segments of this type are off-duty time.
func (s SegmentType) OffDuty() bool {
	return s == SegmentBreak || s == SegmentRest
}

// The atomic schedule unit: one typed, timed activity on one log day.
// Segments are immutable once emitted; Start < End and DurationHours always
// equals the End - Start span expressed in hours.
type Segment struct {
	Type          SegmentType `json:"type"`
	Start         time.Time   `json:"start"`
	End           time.Time   `json:"end"`
	DurationHours float64     `json:"duration_hours"`
	Day           int         `json:"day"`
}

// One driver-day of the schedule: a day index (1-based, counted in 24-hour
// multiples from trip start) with its ordered, contiguous segments and
// derived duty totals.
type DailyLog struct {
	Day          int       `json:"day"`
	Segments     []Segment `json:"segments"`
	DrivingHours float64   `json:"driving_hours"`
	OnDutyHours  float64   `json:"on_duty_hours"`
	OffDutyHours float64   `json:"off_duty_hours"`
}
