package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arbiterhq.io/arbiter/internal/model"
)

type verdictStore struct {
	pool *pgxpool.Pool
}

func newVerdictStore(pool *pgxpool.Pool) VerdictStore {
	return &verdictStore{pool: pool}
}

func (s *verdictStore) Create(ctx context.Context, verdict *model.Verdict) error {
	citations, err := json.Marshal(verdict.Citations)
	if err != nil {
		return fmt.Errorf("marshaling citations: %w", err)
	}

	query := `
		INSERT INTO debate_verdicts (
			id, session_id, winner_id, verdict_kind, confidence_score,
			constitutional_score, citations, escalation_required,
			escalation_reason, rationale
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return s.pool.QueryRow(ctx, query,
		verdict.ID,
		verdict.SessionID,
		verdict.WinnerID,
		verdict.Kind,
		verdict.ConfidenceScore,
		verdict.ConstitutionalScore,
		citations,
		verdict.EscalationRequired,
		verdict.EscalationReason,
		verdict.Rationale,
	).Scan(&verdict.CreatedAt)
}

func (s *verdictStore) GetBySession(ctx context.Context, sessionID int64) (*model.Verdict, error) {
	query := `
		SELECT id, session_id, winner_id, verdict_kind, confidence_score,
			constitutional_score, citations, escalation_required,
			escalation_reason, rationale, created_at
		FROM debate_verdicts
		WHERE session_id = $1`

	var verdict model.Verdict
	var citations []byte
	err := s.pool.QueryRow(ctx, query, sessionID).Scan(
		&verdict.ID,
		&verdict.SessionID,
		&verdict.WinnerID,
		&verdict.Kind,
		&verdict.ConfidenceScore,
		&verdict.ConstitutionalScore,
		&citations,
		&verdict.EscalationRequired,
		&verdict.EscalationReason,
		&verdict.Rationale,
		&verdict.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(citations, &verdict.Citations); err != nil {
		return nil, fmt.Errorf("unmarshaling citations: %w", err)
	}
	return &verdict, nil
}
