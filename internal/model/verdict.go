package model

import "time"

type VerdictKind string

const (
	VerdictKindSelected VerdictKind = "selected"
	VerdictKindDefer    VerdictKind = "defer"
)

// EvidenceSnippet ties a citation back to the argument that triggered it.
type EvidenceSnippet struct {
	ActorID    string `json:"actor_id"`
	ArgumentID int64  `json:"argument_id"`
	Excerpt    string `json:"excerpt"`
}

// Citation is a principle from the rulebook that the debate's arguments
// touched, with the evidence that triggered it. Citations are recomputed on
// demand from the full argument set; the verdict snapshots a copy at render
// time.
type Citation struct {
	PrincipleID      string            `json:"principle_id"`
	PrincipleName    string            `json:"principle_name"`
	RelevanceScore   float64           `json:"relevance_score"`
	EvidenceSnippets []EvidenceSnippet `json:"evidence_snippets"`
	Rationale        string            `json:"rationale"`
}

// Verdict is the rendered outcome of a debate session. Created exactly once
// per session and immutable afterwards; re-arbitration opens a new session.
type Verdict struct {
	ID                  int64       `json:"id"`
	SessionID           int64       `json:"session_id"`
	WinnerID            *string     `json:"winner_id,omitempty"`
	Kind                VerdictKind `json:"verdict_kind"`
	ConfidenceScore     float64     `json:"confidence_score"`
	ConstitutionalScore float64     `json:"constitutional_score"`
	Citations           []Citation  `json:"citations"`
	EscalationRequired  bool        `json:"escalation_required"`
	EscalationReason    *string     `json:"escalation_reason,omitempty"`
	Rationale           string      `json:"rationale"`
	CreatedAt           time.Time   `json:"created_at"`
}
