package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
)

const schemaLockID = int64(2026101401)

type SearchEventRepository struct {
	db *sql.DB
}

func NewSearchEventRepository(db *sql.DB) *SearchEventRepository {
	return &SearchEventRepository{db: db}
}

func (r *SearchEventRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockID); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS search_events (
	id TEXT PRIMARY KEY,
	category TEXT NOT NULL,
	action TEXT NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	occurred_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_search_events_occurred_at ON search_events(occurred_at DESC);
CREATE INDEX IF NOT EXISTS idx_search_events_action ON search_events(action);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Record is idempotent on event id so redelivered messages are harmless.
func (r *SearchEventRepository) Record(ctx context.Context, event domain.SearchEvent) error {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO search_events (id, category, action, label, occurred_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING
`, event.ID, event.Category, event.Action, event.Label, occurredAt.UTC())
	if err != nil {
		return fmt.Errorf("insert search event: %w", err)
	}
	return nil
}

func (r *SearchEventRepository) CountByAction(ctx context.Context, since time.Time) ([]domain.ActionCount, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT action, COUNT(*)
FROM search_events
WHERE occurred_at >= $1
GROUP BY action
ORDER BY COUNT(*) DESC, action ASC
`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("count search events: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.ActionCount, 0)
	for rows.Next() {
		var c domain.ActionCount
		if err := rows.Scan(&c.Action, &c.Count); err != nil {
			return nil, fmt.Errorf("scan action count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action counts: %w", err)
	}
	return counts, nil
}
