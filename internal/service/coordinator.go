package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"arbiterhq.io/arbiter/common/logger"
	"arbiterhq.io/arbiter/internal/model"
)

type ResultVerdict string

const (
	ResultPass            ResultVerdict = "PASS"
	ResultConditionalPass ResultVerdict = "CONDITIONAL_PASS"
	ResultFail            ResultVerdict = "FAIL"
	ResultBlocked         ResultVerdict = "BLOCKED"
)

// ClosedByCoordinator is recorded as the closer of sessions the coordinator
// drives end to end.
const ClosedByCoordinator = "arbitration-coordinator"

type ArbitrationRequest struct {
	Scope           string
	Initiator       string
	DryRun          bool
	Recommendations []model.Recommendation
}

type AnalysisDetail struct {
	ConflictDetected bool               `json:"conflict_detected"`
	ConflictType     model.ConflictType `json:"conflict_type,omitempty"`
	Fingerprint      string             `json:"fingerprint,omitempty"`
	SimilarityScore  *float64           `json:"similarity_score,omitempty"`
	DebateSessionID  *int64             `json:"debate_session_id,omitempty"`
	VerdictID        *int64             `json:"verdict_id,omitempty"`
	Citations        []model.Citation   `json:"citations"`
}

// ArbitrationResult is the externally observable outcome consumed by the
// surrounding pipeline. Every invocation produces one; nothing escapes as an
// unhandled error.
type ArbitrationResult struct {
	Verdict          ResultVerdict  `json:"verdict"`
	Confidence       int            `json:"confidence"`
	DetailedAnalysis AnalysisDetail `json:"detailed_analysis"`
	Warnings         []string       `json:"warnings"`
	CriticalIssues   []string       `json:"critical_issues"`
	Recommendations  []string       `json:"recommendations"`
}

// ArbitrationCoordinator sequences detection, rate limiting, the debate, and
// verdict rendering end to end, with an explicit early-exit ladder:
// no conflict, blocked, dry run, full run.
type ArbitrationCoordinator interface {
	Arbitrate(ctx context.Context, req ArbitrationRequest) *ArbitrationResult
}

type arbitrationCoordinator struct {
	detector     ConflictDetector
	limiter      RateLimiter
	orchestrator DebateOrchestrator
	citations    CitationAnalyzer
	renderer     VerdictRenderer
	audit        AuditTrail
}

func NewArbitrationCoordinator(
	detector ConflictDetector,
	limiter RateLimiter,
	orchestrator DebateOrchestrator,
	citations CitationAnalyzer,
	renderer VerdictRenderer,
	audit AuditTrail,
) ArbitrationCoordinator {
	return &arbitrationCoordinator{
		detector:     detector,
		limiter:      limiter,
		orchestrator: orchestrator,
		citations:    citations,
		renderer:     renderer,
		audit:        audit,
	}
}

// Arbitrate never returns an unhandled failure: anything unexpected is
// converted into a FAIL result at this boundary, since the caller is an
// automated pipeline that must always receive a structured result.
func (c *arbitrationCoordinator) Arbitrate(ctx context.Context, req ArbitrationRequest) (result *ArbitrationResult) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Scope:     logger.Ptr(req.Scope),
		Component: "arbiter.service.coordinator",
	})

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "arbitration panicked", "panic", r)
			result = failResult(fmt.Sprintf("internal error: %v", r))
		}
	}()

	result, err := c.run(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "arbitration failed", "error", err)
		c.audit.Record(ctx, req.Scope, model.AuditEventDebateFailed, map[string]any{
			"error": err.Error(),
		})
		return failResult(err.Error())
	}
	return result
}

func (c *arbitrationCoordinator) run(ctx context.Context, req ArbitrationRequest) (*ArbitrationResult, error) {
	if len(req.Recommendations) < 2 {
		return &ArbitrationResult{
			Verdict:          ResultPass,
			Confidence:       100,
			DetailedAnalysis: AnalysisDetail{Citations: []model.Citation{}},
			Warnings:         []string{"arbitration requires two recommendations; treated as no conflict"},
			CriticalIssues:   []string{},
			Recommendations:  []string{},
		}, nil
	}

	conflict := c.detector.Detect(req.Recommendations[0], req.Recommendations[1])
	if conflict == nil {
		return &ArbitrationResult{
			Verdict:          ResultPass,
			Confidence:       100,
			DetailedAnalysis: AnalysisDetail{Citations: []model.Citation{}},
			Warnings:         []string{},
			CriticalIssues:   []string{},
			Recommendations:  []string{"no material conflict detected between recommendations"},
		}, nil
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Fingerprint: logger.Ptr(conflict.Fingerprint),
		ArtifactID:  logger.Ptr(conflict.ArtifactID),
	})
	slog.InfoContext(ctx, "conflict detected",
		"conflict_type", conflict.Type,
		"similarity_score", conflict.SimilarityScore,
	)

	analysis := AnalysisDetail{
		ConflictDetected: true,
		ConflictType:     conflict.Type,
		Fingerprint:      conflict.Fingerprint,
		SimilarityScore:  &conflict.SimilarityScore,
		Citations:        []model.Citation{},
	}

	decision := c.limiter.CheckAllowed(ctx, req.Scope, conflict.Fingerprint)
	if !decision.Allowed {
		warnings := []string{decision.Reason}
		if decision.RetryAfterHours > 0 {
			warnings = append(warnings, fmt.Sprintf("retry after %dh", decision.RetryAfterHours))
		}
		return &ArbitrationResult{
			Verdict:          ResultBlocked,
			Confidence:       0,
			DetailedAnalysis: analysis,
			Warnings:         warnings,
			CriticalIssues:   []string{},
			Recommendations:  []string{},
		}, nil
	}

	warnings := []string{}
	if decision.Degraded {
		warnings = append(warnings, "rate limiter degraded: allowed without strict enforcement")
	}

	if req.DryRun {
		return &ArbitrationResult{
			Verdict:          ResultPass,
			Confidence:       100,
			DetailedAnalysis: analysis,
			Warnings:         append(warnings, "dry run: no debate session opened"),
			CriticalIssues:   []string{},
			Recommendations:  []string{"conflict detected and arbitration permitted; run without dry_run to debate"},
		}, nil
	}

	session, err := c.orchestrator.OpenSession(ctx, conflict, req.Scope, req.Initiator)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{SessionID: logger.Ptr(session.ID)})
	analysis.DebateSessionID = &session.ID

	for _, rec := range conflict.Recommendations {
		_, err := c.orchestrator.RecordArgument(ctx, session.ID, ArgumentInput{
			ActorID:   rec.ActorID,
			Kind:      model.ArgumentKindInitialPosition,
			Summary:   rec.Text,
			Reasoning: fmt.Sprintf("initial recommendation for artifact %s (category %s)", rec.ArtifactID, rec.Category),
			Strength:  rec.Confidence,
		})
		if err != nil {
			return nil, err
		}
	}

	arguments, err := c.orchestrator.Arguments(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	citations := c.citations.Analyze(arguments)
	analysis.Citations = citations

	winnerID := pickWinner(arguments)
	rationale := "argument strength tied; deferring winner selection"
	if winnerID != nil {
		rationale = fmt.Sprintf("actor %s presented the strongest aggregate position", *winnerID)
	}

	verdict, err := c.renderer.Render(ctx, session, arguments, citations, winnerID, rationale)
	if err != nil {
		return nil, err
	}
	analysis.VerdictID = &verdict.ID

	finalStatus := model.SessionStatusVerdictRendered
	if verdict.EscalationRequired {
		finalStatus = model.SessionStatusEscalated
	}
	if err := c.orchestrator.CloseSession(ctx, session.ID, finalStatus, ClosedByCoordinator); err != nil {
		return nil, err
	}

	c.audit.Record(ctx, req.Scope, model.AuditEventDebateCompleted, map[string]any{
		"fingerprint": conflict.Fingerprint,
		"session_id":  session.ID,
		"verdict_id":  verdict.ID,
		"confidence":  verdict.ConfidenceScore,
	})

	resultVerdict := ResultPass
	recommendations := []string{}
	if winnerID != nil {
		recommendations = append(recommendations, fmt.Sprintf("adopt recommendation from actor %s", *winnerID))
	} else {
		recommendations = append(recommendations, "no winner selected; defer to human judgment")
	}
	if verdict.EscalationRequired {
		resultVerdict = ResultConditionalPass
		warnings = append(warnings, *verdict.EscalationReason)
	}

	return &ArbitrationResult{
		Verdict:          resultVerdict,
		Confidence:       int(math.Round(verdict.ConfidenceScore * 100)),
		DetailedAnalysis: analysis,
		Warnings:         warnings,
		CriticalIssues:   []string{},
		Recommendations:  recommendations,
	}, nil
}

// pickWinner sums argument strength per actor; the strict maximum wins and a
// tie means no winner.
func pickWinner(arguments []model.Argument) *string {
	totals := map[string]float64{}
	order := []string{}
	for i := range arguments {
		actor := arguments[i].ActorID
		if _, seen := totals[actor]; !seen {
			order = append(order, actor)
		}
		totals[actor] += arguments[i].EffectiveStrength()
	}

	if len(order) == 0 {
		return nil
	}

	winner := order[0]
	tied := false
	for _, actor := range order[1:] {
		switch {
		case totals[actor] > totals[winner]:
			winner = actor
			tied = false
		case totals[actor] == totals[winner]:
			tied = true
		}
	}

	if tied {
		return nil
	}
	return &winner
}

func failResult(message string) *ArbitrationResult {
	return &ArbitrationResult{
		Verdict:          ResultFail,
		Confidence:       0,
		DetailedAnalysis: AnalysisDetail{Citations: []model.Citation{}},
		Warnings:         []string{},
		CriticalIssues:   []string{message},
		Recommendations:  []string{},
	}
}
