package model

// Recommendation is a position submitted by an upstream actor about a single
// artifact. It is input to arbitration and immutable once submitted.
type Recommendation struct {
	ActorID    string   `json:"actor_id"`
	ArtifactID string   `json:"artifact_id"`
	Category   string   `json:"category"`
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
}
