package service

import (
	"context"
	"fmt"
	"math"

	"arbiterhq.io/arbiter/common/id"
	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/store"
)

const (
	coverageWeight  = 0.3
	strengthWeight  = 0.4
	consensusWeight = 0.3

	// coverageSaturation is the distinct-citation count at which the
	// constitutional coverage factor maxes out.
	coverageSaturation = 5

	// EscalationThreshold is the confidence below which a verdict must be
	// routed to a human reviewer.
	EscalationThreshold = 0.6

	// highPriorityThreshold splits escalations into high and medium review
	// priority. Exactly 0.4 is medium.
	highPriorityThreshold = 0.4
)

// VerdictRenderer combines citations and argument signals into a confidence
// score, persists the verdict, and escalates low-confidence outcomes.
// Verdict persistence failure is fatal; escalation request failure is not.
type VerdictRenderer interface {
	Render(ctx context.Context, session *model.DebateSession, arguments []model.Argument, citations []model.Citation, winnerID *string, rationale string) (*model.Verdict, error)
}

type verdictRenderer struct {
	verdicts store.VerdictStore
	reviews  ReviewRequester
}

func NewVerdictRenderer(verdicts store.VerdictStore, reviews ReviewRequester) VerdictRenderer {
	return &verdictRenderer{
		verdicts: verdicts,
		reviews:  reviews,
	}
}

func (r *verdictRenderer) Render(ctx context.Context, session *model.DebateSession, arguments []model.Argument, citations []model.Citation, winnerID *string, rationale string) (*model.Verdict, error) {
	confidence := ConfidenceScore(arguments, citations)

	kind := model.VerdictKindDefer
	if winnerID != nil {
		kind = model.VerdictKindSelected
	}

	verdict := &model.Verdict{
		ID:                  id.New(),
		SessionID:           session.ID,
		WinnerID:            winnerID,
		Kind:                kind,
		ConfidenceScore:     confidence,
		ConstitutionalScore: constitutionalScore(citations),
		Citations:           citations,
		Rationale:           rationale,
	}

	if confidence < EscalationThreshold {
		verdict.EscalationRequired = true
		reason := fmt.Sprintf("verdict confidence %.2f below threshold %.2f", confidence, EscalationThreshold)
		verdict.EscalationReason = &reason
	}

	// No meaningful verdict exists only in memory: a failed write is fatal.
	if err := r.verdicts.Create(ctx, verdict); err != nil {
		return nil, fmt.Errorf("persisting verdict: %w", err)
	}

	if verdict.EscalationRequired {
		priority := model.ReviewPriorityMedium
		if confidence < highPriorityThreshold {
			priority = model.ReviewPriorityHigh
		}

		metadata := map[string]any{
			"confidence_score": confidence,
			"verdict_kind":     string(kind),
		}
		if len(citations) > 0 {
			metadata["top_principle"] = citations[0].PrincipleName
		}

		r.reviews.Request(ctx, "debate_verdict", session.ID, *verdict.EscalationReason, priority, metadata)
	}

	return verdict, nil
}

// ConfidenceScore is the weighted sum of constitutional coverage, mean
// argument strength, and the final-round consensus proxy, clamped to [0,1].
func ConfidenceScore(arguments []model.Argument, citations []model.Citation) float64 {
	coverage := math.Min(1, float64(len(citations))/coverageSaturation) * coverageWeight
	strength := meanStrength(arguments) * strengthWeight
	consensus := consensusRaw(arguments) * consensusWeight

	return clamp01(coverage + strength + consensus)
}

func meanStrength(arguments []model.Argument) float64 {
	if len(arguments) == 0 {
		return 0.5
	}

	var total float64
	for i := range arguments {
		total += arguments[i].EffectiveStrength()
	}
	return total / float64(len(arguments))
}

// consensusRaw treats fewer distinct final-round arguments as a proxy for
// converging positions. This does not compare argument content for actual
// agreement; it is a deliberate, documented approximation. Two or fewer
// final-round arguments score the neutral 0.5.
func consensusRaw(arguments []model.Argument) float64 {
	finalRound := int32(0)
	for i := range arguments {
		if arguments[i].Round > finalRound {
			finalRound = arguments[i].Round
		}
	}

	count := 0
	for i := range arguments {
		if arguments[i].Round == finalRound {
			count++
		}
	}

	if count <= 2 {
		return 0.5
	}
	return math.Max(0, 1-float64(count-2)*0.2)
}

func constitutionalScore(citations []model.Citation) float64 {
	if len(citations) == 0 {
		return 0
	}

	var total float64
	for i := range citations {
		total += citations[i].RelevanceScore
	}
	return total / float64(len(citations))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
