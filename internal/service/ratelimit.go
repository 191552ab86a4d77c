package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/store"
)

// RateLimitDecision is the outcome of a rate limit check. A denial is normal
// control flow, not an error. Degraded marks decisions made while the
// underlying session history was unreadable: the limiter fails open, but
// callers and observability can tell "genuinely allowed" from "allowed
// because we couldn't check".
type RateLimitDecision struct {
	Allowed         bool
	Degraded        bool
	Reason          string
	RetryAfterHours int
	RecentCount     int
}

// RateLimiter enforces how often arbitration may run: a per-scope volume
// limit and a per-fingerprint cooldown over a rolling window. Both checks are
// derived from persisted session history on every call, so multiple engine
// instances enforce the same limits without shared in-process state.
type RateLimiter interface {
	CheckAllowed(ctx context.Context, scope, fingerprint string) RateLimitDecision
}

type rateLimiter struct {
	sessions    store.DebateSessionStore
	audit       AuditTrail
	maxPerScope int
	cooldown    time.Duration
	logger      *slog.Logger
}

func NewRateLimiter(sessions store.DebateSessionStore, audit AuditTrail, maxPerScope int, cooldown time.Duration, logger *slog.Logger) RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &rateLimiter{
		sessions:    sessions,
		audit:       audit,
		maxPerScope: maxPerScope,
		cooldown:    cooldown,
		logger:      logger,
	}
}

func (l *rateLimiter) CheckAllowed(ctx context.Context, scope, fingerprint string) RateLimitDecision {
	now := time.Now().UTC()
	since := now.Add(-l.cooldown)
	degraded := false

	count, err := l.sessions.CountOpenedSince(ctx, scope, since)
	if err != nil {
		// Fail open: availability of arbitration beats strict enforcement.
		l.logger.WarnContext(ctx, "rate limiter degraded: scope count unavailable", "scope", scope, "error", err)
		degraded = true
	} else if count >= l.maxPerScope {
		reason := fmt.Sprintf("max arbitrations per scope reached (%d within %s)", count, l.cooldown)
		l.audit.Record(ctx, scope, model.AuditEventDebateBlocked, map[string]any{
			"fingerprint":  fingerprint,
			"reason":       reason,
			"recent_count": count,
		})
		return RateLimitDecision{
			Allowed:     false,
			Reason:      reason,
			RecentCount: count,
		}
	}

	last, err := l.sessions.FindMostRecentByFingerprint(ctx, fingerprint, since)
	switch {
	case err == nil:
		remaining := l.cooldown - now.Sub(last.OpenedAt)
		retryAfter := int(math.Ceil(remaining.Hours()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		reason := "cooldown active for this conflict"
		l.audit.Record(ctx, scope, model.AuditEventDebateBlocked, map[string]any{
			"fingerprint":       fingerprint,
			"reason":            reason,
			"retry_after_hours": retryAfter,
			"last_session_id":   last.ID,
		})
		return RateLimitDecision{
			Allowed:         false,
			Reason:          reason,
			RetryAfterHours: retryAfter,
			RecentCount:     count,
		}
	case errors.Is(err, store.ErrNotFound):
		// No recent session with this fingerprint; cooldown clear.
	default:
		l.logger.WarnContext(ctx, "rate limiter degraded: cooldown lookup unavailable", "fingerprint", fingerprint, "error", err)
		degraded = true
	}

	return RateLimitDecision{
		Allowed:     true,
		Degraded:    degraded,
		RecentCount: count,
	}
}
