package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Stores struct {
	pool *pgxpool.Pool
}

func NewStores(pool *pgxpool.Pool) *Stores {
	return &Stores{pool: pool}
}

func (s *Stores) Sessions() DebateSessionStore {
	return newSessionStore(s.pool)
}

func (s *Stores) Arguments() ArgumentStore {
	return newArgumentStore(s.pool)
}

func (s *Stores) Verdicts() VerdictStore {
	return newVerdictStore(s.pool)
}

func (s *Stores) Audits() AuditStore {
	return newAuditStore(s.pool)
}

func (s *Stores) ReviewRequests() ReviewRequestStore {
	return newReviewRequestStore(s.pool)
}
