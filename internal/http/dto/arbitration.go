package dto

type RecommendationRequest struct {
	ActorID    string   `json:"actor_id" binding:"required"`
	ArtifactID string   `json:"artifact_id" binding:"required"`
	Category   string   `json:"category"`
	Text       string   `json:"text" binding:"required"`
	Confidence *float64 `json:"confidence"`
}

type ArbitrateRequest struct {
	Scope           string                  `json:"scope" binding:"required"`
	Initiator       string                  `json:"initiator"`
	DryRun          bool                    `json:"dry_run"`
	Recommendations []RecommendationRequest `json:"recommendations" binding:"required,min=2,max=2,dive"`
}
