package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

func TestCreateTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteTripRepository(db)
	trip := &domain.Trip{
		ID:              "11111111-2222-3333-4444-555555555555",
		CurrentLocation: "Chicago, IL",
		PickupLocation:  "St. Louis, MO",
		DropoffLocation: "Dallas, TX",
		CycleHoursUsed:  12.5,
		CreatedAt:       time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO trips").
		WithArgs(trip.ID, trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation,
			trip.CycleHoursUsed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.CreateTrip(context.Background(), trip))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTripNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteTripRepository(db)

	mock.ExpectQuery("SELECT(.|\n)+FROM trips").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "current_location", "pickup_location", "dropoff_location",
			"cycle_hours_used", "created_at", "route_data", "eld_logs",
		}))

	_, err = repo.GetTrip(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrTripNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTripWithStoredPlan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteTripRepository(db)

	routeJSON := `{"distance_miles":500,"duration_hours":8}`
	logsJSON := `[{"day":1,"segments":[],"driving_hours":8,"on_duty_hours":2,"off_duty_hours":0}]`

	mock.ExpectQuery("SELECT(.|\n)+FROM trips").
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "current_location", "pickup_location", "dropoff_location",
			"cycle_hours_used", "created_at", "route_data", "eld_logs",
		}).AddRow(
			"t1", "Chicago, IL", "St. Louis, MO", "Dallas, TX",
			0.0, "2026-03-02T06:00:00Z", routeJSON, logsJSON,
		))

	trip, err := repo.GetTrip(context.Background(), "t1")
	require.NoError(t, err)

	require.True(t, trip.Planned())
	assert.InDelta(t, 500.0, trip.Route.DistanceMiles, 1e-9)
	assert.InDelta(t, 8.0, trip.Route.DurationHours, 1e-9)
	require.Len(t, trip.Logs, 1)
	assert.Equal(t, 1, trip.Logs[0].Day)
	assert.Equal(t, time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC), trip.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePlanUnknownTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSqliteTripRepository(db)

	mock.ExpectExec("UPDATE trips").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SavePlan(context.Background(), "missing", &domain.Route{}, nil)
	assert.ErrorIs(t, err, ports.ErrTripNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
