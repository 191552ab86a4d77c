package model

import "time"

const (
	AuditEventDebateBlocked   = "debate_blocked"
	AuditEventDebateCompleted = "debate_completed"
	AuditEventDebateFailed    = "debate_failed"
)

// AuditEvent is a lightweight observability record of an arbitration
// lifecycle transition. Recording is best-effort; losing one never fails the
// arbitration it describes.
type AuditEvent struct {
	ID        int64          `json:"id"`
	Scope     string         `json:"scope"`
	EventType string         `json:"event_type"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
