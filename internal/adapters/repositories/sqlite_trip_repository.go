package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// SQLite-backed implementation of the TripRepository port. The computed plan
// (route and daily logs) is stored as JSON on the trip row, so a planned trip
// can be served again without recomputation.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Persist a new trip request.
func (s *SqliteTripRepository) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	if trip == nil {
		return errors.New("create trip: trip is nil")
	}

	query := `
	INSERT INTO trips (
		id,
		current_location,
		pickup_location,
		dropoff_location,
		cycle_hours_used,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`

	_, err := s.DB.ExecContext(ctx, query,
		trip.ID,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CycleHoursUsed,
		trip.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create trip: insert trips row: %w", err)
	}

	return nil
}

// Retrieve a trip (including any stored plan) by id.
func (s *SqliteTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		id,
		current_location,
		pickup_location,
		dropoff_location,
		cycle_hours_used,
		created_at,
		route_data,
		eld_logs
	FROM trips
	WHERE id = ?;
	`

	trip, err := scanTrip(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %q: %w", id, ports.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %q: %w", id, err)
	}

	return trip, nil
}

// Retrieve all trips, newest first.
func (s *SqliteTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		id,
		current_location,
		pickup_location,
		dropoff_location,
		cycle_hours_used,
		created_at,
		route_data,
		eld_logs
	FROM trips
	ORDER BY created_at DESC;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

// Store the computed route and daily logs for a trip.
func (s *SqliteTripRepository) SavePlan(ctx context.Context, id string, route *domain.Route, logs []domain.DailyLog) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	routeJSON, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("save plan: encode route: %w", err)
	}
	logsJSON, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("save plan: encode logs: %w", err)
	}

	query := `
	UPDATE trips
	SET route_data = ?, eld_logs = ?
	WHERE id = ?;
	`

	res, err := s.DB.ExecContext(ctx, query, routeJSON, logsJSON, id)
	if err != nil {
		return fmt.Errorf("save plan: update trips row: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save plan: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("save plan for %q: %w", id, ports.ErrTripNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var (
		trip      domain.Trip
		createdAt string
		routeRaw  sql.NullString
		logsRaw   sql.NullString
	)

	err := row.Scan(
		&trip.ID,
		&trip.CurrentLocation,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.CycleHoursUsed,
		&createdAt,
		&routeRaw,
		&logsRaw,
	)
	if err != nil {
		return nil, err
	}

	trip.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan trip: parse created_at %q: %w", createdAt, err)
	}

	if routeRaw.Valid && routeRaw.String != "" {
		trip.Route = &domain.Route{}
		if err := json.Unmarshal([]byte(routeRaw.String), trip.Route); err != nil {
			return nil, fmt.Errorf("scan trip: decode route_data: %w", err)
		}
	}
	if logsRaw.Valid && logsRaw.String != "" {
		if err := json.Unmarshal([]byte(logsRaw.String), &trip.Logs); err != nil {
			return nil, fmt.Errorf("scan trip: decode eld_logs: %w", err)
		}
	}

	return &trip, nil
}
