package model

import "time"

type ReviewPriority string

const (
	ReviewPriorityHigh   ReviewPriority = "high"
	ReviewPriorityMedium ReviewPriority = "medium"
)

// ReviewRequest routes a low-confidence verdict to a human reviewer.
type ReviewRequest struct {
	ID         int64          `json:"id"`
	SourceType string         `json:"source_type"`
	SourceID   int64          `json:"source_id"`
	Reason     string         `json:"reason"`
	Priority   ReviewPriority `json:"priority"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
