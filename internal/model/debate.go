package model

import "time"

type SessionStatus string

const (
	SessionStatusActive          SessionStatus = "active"
	SessionStatusEscalated       SessionStatus = "escalated"
	SessionStatusVerdictRendered SessionStatus = "verdict_rendered"
)

// DebateSession is the state machine instance for one arbitrated conflict.
// It starts active at round 1 and becomes terminal once closed; there is no
// transition back to active.
type DebateSession struct {
	ID                  int64         `json:"id"`
	ConflictFingerprint string        `json:"conflict_fingerprint"`
	Scope               string        `json:"scope"`
	ArtifactID          string        `json:"artifact_id"`
	ConflictType        ConflictType  `json:"conflict_type"`
	Status              SessionStatus `json:"status"`
	CurrentRound        int32         `json:"current_round"`
	MaxRounds           int32         `json:"max_rounds"`
	InitiatedBy         string        `json:"initiated_by"`
	OpenedAt            time.Time     `json:"opened_at"`
	ClosedAt            *time.Time    `json:"closed_at,omitempty"`
	ClosedBy            *string       `json:"closed_by,omitempty"`
}

func (s *DebateSession) IsTerminal() bool {
	return s.Status != SessionStatusActive
}

type ArgumentKind string

const (
	ArgumentKindInitialPosition ArgumentKind = "initial_position"
	ArgumentKindRebuttal        ArgumentKind = "rebuttal"
	ArgumentKindClarification   ArgumentKind = "clarification"
	ArgumentKindConcession      ArgumentKind = "concession"
)

// Argument is one contribution by one actor within a debate round. Arguments
// are append-only and owned by their session.
type Argument struct {
	ID              int64        `json:"id"`
	SessionID       int64        `json:"session_id"`
	Round           int32        `json:"round"`
	ActorID         string       `json:"actor_id"`
	Kind            ArgumentKind `json:"kind"`
	Summary         string       `json:"summary"`
	Reasoning       string       `json:"reasoning"`
	CitedPrinciples []string     `json:"cited_principles,omitempty"`
	EvidenceRefs    []string     `json:"evidence_refs,omitempty"`
	Strength        *float64     `json:"strength,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// EffectiveStrength returns the argument's strength, defaulting to 0.5 when
// the submitting actor did not score it.
func (a *Argument) EffectiveStrength() float64 {
	if a.Strength == nil {
		return 0.5
	}
	return *a.Strength
}
