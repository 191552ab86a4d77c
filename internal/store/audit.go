package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"arbiterhq.io/arbiter/internal/model"
)

type auditStore struct {
	pool *pgxpool.Pool
}

func newAuditStore(pool *pgxpool.Pool) AuditStore {
	return &auditStore{pool: pool}
}

func (s *auditStore) Record(ctx context.Context, event *model.AuditEvent) error {
	details, err := json.Marshal(event.Details)
	if err != nil {
		return fmt.Errorf("marshaling details: %w", err)
	}

	query := `
		INSERT INTO audit_events (id, scope, event_type, details)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return s.pool.QueryRow(ctx, query,
		event.ID,
		event.Scope,
		event.EventType,
		details,
	).Scan(&event.CreatedAt)
}
