package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripValidate(t *testing.T) {
	valid := Trip{
		CurrentLocation: "Chicago, IL",
		PickupLocation:  "St. Louis, MO",
		DropoffLocation: "Dallas, TX",
		CycleHoursUsed:  34.5,
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Trip)
	}{
		{"missing current location", func(tr *Trip) { tr.CurrentLocation = "  " }},
		{"missing pickup location", func(tr *Trip) { tr.PickupLocation = "" }},
		{"missing dropoff location", func(tr *Trip) { tr.DropoffLocation = "" }},
		{"negative cycle hours", func(tr *Trip) { tr.CycleHoursUsed = -1 }},
		{"cycle hours above cap", func(tr *Trip) { tr.CycleHoursUsed = 70.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trip := valid
			tc.mutate(&trip)
			assert.ErrorIs(t, trip.Validate(), ErrInvalidInput)
		})
	}
}

func TestTripPlanned(t *testing.T) {
	trip := Trip{}
	assert.False(t, trip.Planned())

	trip.Route = &Route{DistanceMiles: 1, DurationHours: 1}
	assert.False(t, trip.Planned())

	trip.Logs = []DailyLog{{Day: 1}}
	assert.True(t, trip.Planned())
}
