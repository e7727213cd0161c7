package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/events"
)

// Repository reads and writes outbox rows. The outbox table's insert
// trigger notifies the listener, so writers never talk to the bus.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) insert(ctx context.Context, aggregateType string, aggregateID uuid.UUID, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	const q = `INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload)
	           VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, q, uuid.New(), aggregateType, aggregateID, eventType, raw); err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

func (r *Repository) GameSimulated(ctx context.Context, payload events.GameSimulated) error {
	return r.insert(ctx, "game", payload.GameID, events.TypeGameSimulated, payload)
}

func (r *Repository) PlayerSigned(ctx context.Context, payload events.PlayerSigned) error {
	return r.insert(ctx, "player", payload.PlayerID, events.TypePlayerSigned, payload)
}

func (r *Repository) PhaseChanged(ctx context.Context, payload events.PhaseChanged) error {
	return r.insert(ctx, "season", payload.SeasonID, events.TypePhaseChanged, payload)
}

func (r *Repository) SeasonEnded(ctx context.Context, payload events.SeasonEnded) error {
	return r.insert(ctx, "season", payload.SeasonID, events.TypeSeasonEnded, payload)
}

func (r *Repository) SeasonScheduled(ctx context.Context, payload events.SeasonScheduled) error {
	return r.insert(ctx, "season", payload.SeasonID, events.TypeSeasonScheduled, payload)
}

// FetchByID loads one outbox row.
func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	const q = `SELECT id, aggregate_type, aggregate_id, event_type, payload, created_at, published_at
	           FROM outbox WHERE id = $1`
	var e Event
	var publishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt, &publishedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outbox event: %w", err)
	}
	if publishedAt.Valid {
		e.PublishedAt = &publishedAt.Time
	}
	return &e, nil
}

// FetchUnpublished returns the oldest unpublished rows, up to limit.
func (r *Repository) FetchUnpublished(ctx context.Context, limit int) ([]Event, error) {
	const q = `SELECT id, aggregate_type, aggregate_id, event_type, payload, created_at, published_at
	           FROM outbox WHERE published_at IS NULL ORDER BY created_at LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unpublished outbox events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var publishedAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType,
			&e.Payload, &e.CreatedAt, &publishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		if publishedAt.Valid {
			e.PublishedAt = &publishedAt.Time
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkPublished stamps a row as delivered.
func (r *Repository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE outbox SET published_at = NOW() WHERE id = $1 AND published_at IS NULL`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("failed to mark outbox event published: %w", err)
	}
	return nil
}
