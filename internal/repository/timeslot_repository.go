package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// TimeSlotRepository provides persistence for recurring time slots.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository constructs the repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

type timeSlotRow struct {
	ID           int64         `db:"id"`
	Title        string        `db:"title"`
	StartMinutes int           `db:"start_minutes"`
	Duration     string        `db:"duration"`
	Days         pq.Int64Array `db:"days"`
	Color        string        `db:"color"`
}

func (row timeSlotRow) toModel() (models.TimeSlot, error) {
	duration, err := models.ParseClock(row.Duration)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("time slot %d: parse duration %q: %w", row.ID, row.Duration, err)
	}

	days := make([]time.Weekday, 0, len(row.Days))
	for _, day := range row.Days {
		days = append(days, time.Weekday(day))
	}

	return models.TimeSlot{
		ID:       row.ID,
		Title:    row.Title,
		Start:    models.TimeOfDay(row.StartMinutes),
		Duration: duration,
		Days:     days,
		Color:    row.Color,
	}, nil
}

func toTimeSlotRow(slot *models.TimeSlot) timeSlotRow {
	days := make(pq.Int64Array, 0, len(slot.Days))
	for _, day := range slot.Days {
		days = append(days, int64(day))
	}
	return timeSlotRow{
		ID:           slot.ID,
		Title:        slot.Title,
		StartMinutes: int(slot.Start),
		Duration:     slot.Duration.Clock(),
		Days:         days,
		Color:        slot.Color,
	}
}

// List returns every recurring slot ordered by start time.
func (r *TimeSlotRepository) List(ctx context.Context) ([]models.TimeSlot, error) {
	const query = `SELECT id, title, start_minutes, duration, days, color FROM time_slots ORDER BY start_minutes ASC, id ASC`

	var rows []timeSlotRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}

	slots := make([]models.TimeSlot, 0, len(rows))
	for _, row := range rows {
		slot, err := row.toModel()
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// FindByID fetches one slot; it returns nil when no row exists.
func (r *TimeSlotRepository) FindByID(ctx context.Context, id int64) (*models.TimeSlot, error) {
	const query = `SELECT id, title, start_minutes, duration, days, color FROM time_slots WHERE id = $1`

	var row timeSlotRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get time slot: %w", err)
	}

	slot, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts the slot and populates its generated identifier.
func (r *TimeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	row := toTimeSlotRow(slot)

	const query = `INSERT INTO time_slots (title, start_minutes, duration, days, color)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, row.Title, row.StartMinutes, row.Duration, row.Days, row.Color).
		Scan(&slot.ID); err != nil {
		return fmt.Errorf("insert time slot: %w", err)
	}
	return nil
}

// Update replaces the slot. It reports whether a row existed.
func (r *TimeSlotRepository) Update(ctx context.Context, slot *models.TimeSlot) (bool, error) {
	row := toTimeSlotRow(slot)

	const query = `UPDATE time_slots
SET title = $1, start_minutes = $2, duration = $3, days = $4, color = $5
WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query, row.Title, row.StartMinutes, row.Duration, row.Days, row.Color, row.ID)
	if err != nil {
		return false, fmt.Errorf("update time slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update time slot rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes the slot. It reports whether a row existed.
func (r *TimeSlotRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete time slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete time slot rows affected: %w", err)
	}
	return affected > 0, nil
}
