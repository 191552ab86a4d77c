package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"arbiterhq.io/arbiter/internal/model"
)

type reviewRequestStore struct {
	pool *pgxpool.Pool
}

func newReviewRequestStore(pool *pgxpool.Pool) ReviewRequestStore {
	return &reviewRequestStore{pool: pool}
}

func (s *reviewRequestStore) Create(ctx context.Context, req *model.ReviewRequest) error {
	metadata, err := json.Marshal(req.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	query := `
		INSERT INTO review_requests (id, source_type, source_id, reason, priority, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return s.pool.QueryRow(ctx, query,
		req.ID,
		req.SourceType,
		req.SourceID,
		req.Reason,
		req.Priority,
		metadata,
	).Scan(&req.CreatedAt)
}
