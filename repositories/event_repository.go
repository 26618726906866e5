package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dosada05/fantasy-league/models"
)

// StoredEvent is one row of the append-only ledger event log.
type StoredEvent struct {
	Seq        int64            `json:"seq"`
	Kind       models.EventKind `json:"kind"`
	Payload    json.RawMessage  `json:"payload"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type EventRepository interface {
	Append(ctx context.Context, event models.Event) error
	ListRecent(ctx context.Context, limit int) ([]StoredEvent, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) Append(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Kind(), err)
	}

	query := `
		INSERT INTO events (kind, payload, occurred_at)
		VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, string(event.Kind()), payload, event.OccurredAt()); err != nil {
		return fmt.Errorf("failed to append %s event: %w", event.Kind(), err)
	}
	return nil
}

func (r *postgresEventRepository) ListRecent(ctx context.Context, limit int) ([]StoredEvent, error) {
	query := `
		SELECT seq, kind, payload, occurred_at
		FROM events
		ORDER BY seq DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]StoredEvent, 0)
	for rows.Next() {
		var e StoredEvent
		if err := rows.Scan(&e.Seq, &e.Kind, &e.Payload, &e.OccurredAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
