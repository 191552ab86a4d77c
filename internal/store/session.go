package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arbiterhq.io/arbiter/internal/model"
)

type sessionStore struct {
	pool *pgxpool.Pool
}

func newSessionStore(pool *pgxpool.Pool) DebateSessionStore {
	return &sessionStore{pool: pool}
}

const sessionColumns = `id, conflict_fingerprint, scope, artifact_id, conflict_type,
	status, current_round, max_rounds, initiated_by, opened_at, closed_at, closed_by`

func (s *sessionStore) Create(ctx context.Context, session *model.DebateSession) error {
	query := `
		INSERT INTO debate_sessions (
			id, conflict_fingerprint, scope, artifact_id, conflict_type,
			status, current_round, max_rounds, initiated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING opened_at`

	return s.pool.QueryRow(ctx, query,
		session.ID,
		session.ConflictFingerprint,
		session.Scope,
		session.ArtifactID,
		session.ConflictType,
		session.Status,
		session.CurrentRound,
		session.MaxRounds,
		session.InitiatedBy,
	).Scan(&session.OpenedAt)
}

func (s *sessionStore) GetByID(ctx context.Context, id int64) (*model.DebateSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM debate_sessions WHERE id = $1`

	session, err := scanSession(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionStore) UpdateRound(ctx context.Context, id int64, round int32) (*model.DebateSession, error) {
	query := `
		UPDATE debate_sessions SET current_round = $2
		WHERE id = $1
		RETURNING ` + sessionColumns

	session, err := scanSession(s.pool.QueryRow(ctx, query, id, round))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionStore) Close(ctx context.Context, id int64, status model.SessionStatus, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE debate_sessions SET status = $2, closed_by = $3, closed_at = $4
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, status, closedBy, closedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sessionStore) CountOpenedSince(ctx context.Context, scope string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM debate_sessions WHERE scope = $1 AND opened_at >= $2`

	var count int
	if err := s.pool.QueryRow(ctx, query, scope, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *sessionStore) FindMostRecentByFingerprint(ctx context.Context, fingerprint string, since time.Time) (*model.DebateSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM debate_sessions
		WHERE conflict_fingerprint = $1 AND opened_at >= $2
		ORDER BY opened_at DESC
		LIMIT 1`

	session, err := scanSession(s.pool.QueryRow(ctx, query, fingerprint, since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func scanSession(row pgx.Row) (*model.DebateSession, error) {
	var session model.DebateSession
	err := row.Scan(
		&session.ID,
		&session.ConflictFingerprint,
		&session.Scope,
		&session.ArtifactID,
		&session.ConflictType,
		&session.Status,
		&session.CurrentRound,
		&session.MaxRounds,
		&session.InitiatedBy,
		&session.OpenedAt,
		&session.ClosedAt,
		&session.ClosedBy,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
