package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"arbiterhq.io/arbiter/internal/model"
)

type argumentStore struct {
	pool *pgxpool.Pool
}

func newArgumentStore(pool *pgxpool.Pool) ArgumentStore {
	return &argumentStore{pool: pool}
}

func (s *argumentStore) Append(ctx context.Context, arg *model.Argument) error {
	query := `
		INSERT INTO debate_arguments (
			id, session_id, round, actor_id, kind, summary, reasoning,
			cited_principles, evidence_refs, strength
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return s.pool.QueryRow(ctx, query,
		arg.ID,
		arg.SessionID,
		arg.Round,
		arg.ActorID,
		arg.Kind,
		arg.Summary,
		arg.Reasoning,
		arg.CitedPrinciples,
		arg.EvidenceRefs,
		arg.Strength,
	).Scan(&arg.CreatedAt)
}

func (s *argumentStore) ListBySession(ctx context.Context, sessionID int64) ([]model.Argument, error) {
	query := `
		SELECT id, session_id, round, actor_id, kind, summary, reasoning,
			cited_principles, evidence_refs, strength, created_at
		FROM debate_arguments
		WHERE session_id = $1
		ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	args := []model.Argument{}
	for rows.Next() {
		var arg model.Argument
		if err := rows.Scan(
			&arg.ID,
			&arg.SessionID,
			&arg.Round,
			&arg.ActorID,
			&arg.Kind,
			&arg.Summary,
			&arg.Reasoning,
			&arg.CitedPrinciples,
			&arg.EvidenceRefs,
			&arg.Strength,
			&arg.CreatedAt,
		); err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, rows.Err()
}
