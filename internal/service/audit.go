package service

import (
	"context"
	"log/slog"

	"arbiterhq.io/arbiter/common/id"
	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/queue"
	"arbiterhq.io/arbiter/internal/store"
)

// AuditTrail records arbitration lifecycle events. All calls are best-effort:
// failures are logged and swallowed so business logic can call them
// unconditionally, without try/catch sprinkled through it.
type AuditTrail interface {
	Record(ctx context.Context, scope, eventType string, details map[string]any)
}

type bestEffortAuditTrail struct {
	audits    store.AuditStore
	telemetry queue.Producer // optional side-channel for pipeline observers
	logger    *slog.Logger
}

func NewAuditTrail(audits store.AuditStore, telemetry queue.Producer, logger *slog.Logger) AuditTrail {
	if logger == nil {
		logger = slog.Default()
	}
	return &bestEffortAuditTrail{
		audits:    audits,
		telemetry: telemetry,
		logger:    logger,
	}
}

func (t *bestEffortAuditTrail) Record(ctx context.Context, scope, eventType string, details map[string]any) {
	event := &model.AuditEvent{
		ID:        id.New(),
		Scope:     scope,
		EventType: eventType,
		Details:   details,
	}

	if err := t.audits.Record(ctx, event); err != nil {
		t.logger.WarnContext(ctx, "failed to record audit event", "event_type", eventType, "error", err)
	}

	if t.telemetry == nil {
		return
	}

	ev := queue.ArbitrationEvent{
		Scope:     scope,
		EventType: eventType,
	}
	if fp, ok := details["fingerprint"].(string); ok {
		ev.Fingerprint = fp
	}
	if sid, ok := details["session_id"].(int64); ok {
		ev.SessionID = &sid
	}
	if vid, ok := details["verdict_id"].(int64); ok {
		ev.VerdictID = &vid
	}
	if conf, ok := details["confidence"].(float64); ok {
		ev.Confidence = &conf
	}

	if err := t.telemetry.Publish(ctx, ev); err != nil {
		t.logger.WarnContext(ctx, "failed to publish arbitration event", "event_type", eventType, "error", err)
	}
}

// ReviewRequester routes verdicts to human reviewers. Best-effort like the
// audit trail: the verdict stands even when the notification side-channel is
// down.
type ReviewRequester interface {
	Request(ctx context.Context, sourceType string, sourceID int64, reason string, priority model.ReviewPriority, metadata map[string]any)
}

type bestEffortReviewRequester struct {
	reviews store.ReviewRequestStore
	logger  *slog.Logger
}

func NewReviewRequester(reviews store.ReviewRequestStore, logger *slog.Logger) ReviewRequester {
	if logger == nil {
		logger = slog.Default()
	}
	return &bestEffortReviewRequester{
		reviews: reviews,
		logger:  logger,
	}
}

func (r *bestEffortReviewRequester) Request(ctx context.Context, sourceType string, sourceID int64, reason string, priority model.ReviewPriority, metadata map[string]any) {
	req := &model.ReviewRequest{
		ID:         id.New(),
		SourceType: sourceType,
		SourceID:   sourceID,
		Reason:     reason,
		Priority:   priority,
		Metadata:   metadata,
	}

	if err := r.reviews.Create(ctx, req); err != nil {
		r.logger.WarnContext(ctx, "failed to create human review request",
			"source_type", sourceType,
			"source_id", sourceID,
			"priority", priority,
			"error", err,
		)
		return
	}

	r.logger.InfoContext(ctx, "human review requested",
		"source_type", sourceType,
		"source_id", sourceID,
		"priority", priority,
	)
}
