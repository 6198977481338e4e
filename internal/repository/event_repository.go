package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// EventRepository provides persistence for scheduled events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventRow struct {
	ID          string         `db:"id"`
	Summary     string         `db:"summary"`
	Start       time.Time      `db:"start"`
	Duration    string         `db:"duration"`
	Category    sql.NullString `db:"category"`
	Constraints []byte         `db:"constraints"`
}

func (row eventRow) toModel() (models.Event, error) {
	duration, err := models.ParseClock(row.Duration)
	if err != nil {
		return models.Event{}, fmt.Errorf("event %s: parse duration %q: %w", row.ID, row.Duration, err)
	}

	event := models.Event{
		ID:               row.ID,
		Title:            row.Summary,
		Start:            row.Start.UTC(),
		Duration:         duration,
		CategoryOverride: row.Category.String,
	}
	if len(row.Constraints) > 0 {
		constraints := &models.ScheduleConstraints{}
		if err := json.Unmarshal(row.Constraints, constraints); err != nil {
			return models.Event{}, fmt.Errorf("event %s: decode constraints: %w", row.ID, err)
		}
		event.Constraints = constraints
	}
	return event, nil
}

func toEventRow(event *models.Event) (eventRow, error) {
	row := eventRow{
		ID:       event.ID,
		Summary:  event.Title,
		Start:    event.Start.UTC(),
		Duration: event.Duration.Clock(),
	}
	if event.CategoryOverride != "" {
		row.Category = sql.NullString{String: event.CategoryOverride, Valid: true}
	}
	if event.Constraints != nil {
		payload, err := json.Marshal(event.Constraints)
		if err != nil {
			return eventRow{}, fmt.Errorf("event %s: encode constraints: %w", event.ID, err)
		}
		row.Constraints = payload
	}
	return row, nil
}

const eventColumns = `id, summary, start, duration, category, constraints`

// List returns events ordered by start time, optionally limited to a window.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	query := strings.Builder{}
	query.WriteString(`SELECT ` + eventColumns + ` FROM events WHERE 1=1`)

	args := []interface{}{}
	if filter.After != nil {
		args = append(args, filter.After.UTC())
		fmt.Fprintf(&query, " AND start >= $%d", len(args))
	}
	if filter.Before != nil {
		args = append(args, filter.Before.UTC())
		fmt.Fprintf(&query, " AND start < $%d", len(args))
	}
	query.WriteString(" ORDER BY start ASC")

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		event, err := row.toModel()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// FindByID fetches a single event; it returns nil when no row exists.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var row eventRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	event, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts the event, assigning an identifier when absent.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	row, err := toEventRow(event)
	if err != nil {
		return err
	}

	const query = `INSERT INTO events (id, summary, start, duration, category, constraints)
VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, row.ID, row.Summary, row.Start, row.Duration, row.Category, row.Constraints); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Update rewrites the stored event. It reports whether a row was changed.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) (bool, error) {
	row, err := toEventRow(event)
	if err != nil {
		return false, err
	}

	const query = `UPDATE events SET summary = $2, start = $3, duration = $4, category = $5, constraints = $6 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, row.ID, row.Summary, row.Start, row.Duration, row.Category, row.Constraints)
	if err != nil {
		return false, fmt.Errorf("update event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update event rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes the event. It reports whether a row existed.
func (r *EventRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete event rows affected: %w", err)
	}
	return affected > 0, nil
}
