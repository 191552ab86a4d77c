package model

type ConflictType string

const (
	ConflictTypeArchitecture    ConflictType = "architecture"
	ConflictTypeSecurity        ConflictType = "security"
	ConflictTypePerformance     ConflictType = "performance"
	ConflictTypeScope           ConflictType = "scope"
	ConflictTypePriority        ConflictType = "priority"
	ConflictTypeTechnicalChoice ConflictType = "technical_choice"
	ConflictTypeApproach        ConflictType = "approach"
)

// Conflict is a material disagreement between two recommendations on the same
// artifact. The fingerprint is the conflict's identity: it is derived from the
// sorted actor pair, artifact and conflict type, so the same dispute always
// maps to the same fingerprint regardless of argument order.
type Conflict struct {
	Fingerprint     string            `json:"fingerprint"`
	ActorIDs        [2]string         `json:"actor_ids"`
	ArtifactID      string            `json:"artifact_id"`
	Type            ConflictType      `json:"conflict_type"`
	SimilarityScore float64           `json:"similarity_score"`
	Recommendations [2]Recommendation `json:"recommendations"`
}
