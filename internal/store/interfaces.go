package store

import (
	"context"
	"errors"
	"time"

	"arbiterhq.io/arbiter/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// DebateSessionStore defines the contract for debate session persistence.
// Sessions are the rate limiter's source of truth: volume and cooldown checks
// are queries over session history, not separate counters.
type DebateSessionStore interface {
	Create(ctx context.Context, session *model.DebateSession) error
	GetByID(ctx context.Context, id int64) (*model.DebateSession, error)
	UpdateRound(ctx context.Context, id int64, round int32) (*model.DebateSession, error)
	Close(ctx context.Context, id int64, status model.SessionStatus, closedBy string, closedAt time.Time) error
	CountOpenedSince(ctx context.Context, scope string, since time.Time) (int, error)
	FindMostRecentByFingerprint(ctx context.Context, fingerprint string, since time.Time) (*model.DebateSession, error)
}

// ArgumentStore defines the contract for debate argument persistence.
// Arguments are append-only and listed in creation order ascending; round
// identification downstream depends on that ordering.
type ArgumentStore interface {
	Append(ctx context.Context, arg *model.Argument) error
	ListBySession(ctx context.Context, sessionID int64) ([]model.Argument, error)
}

// VerdictStore defines the contract for verdict persistence
type VerdictStore interface {
	Create(ctx context.Context, verdict *model.Verdict) error
	GetBySession(ctx context.Context, sessionID int64) (*model.Verdict, error)
}

// AuditStore defines the contract for audit event persistence
type AuditStore interface {
	Record(ctx context.Context, event *model.AuditEvent) error
}

// ReviewRequestStore defines the contract for human review request persistence
type ReviewRequestStore interface {
	Create(ctx context.Context, req *model.ReviewRequest) error
}
