package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"arbiterhq.io/arbiter/common/id"
	"arbiterhq.io/arbiter/common/logger"
	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/store"
)

// ArgumentInput is the caller-supplied portion of an argument; the
// orchestrator assigns identity and tags it with the session's current round.
type ArgumentInput struct {
	ActorID         string
	Kind            model.ArgumentKind
	Summary         string
	Reasoning       string
	CitedPrinciples []string
	EvidenceRefs    []string
	Strength        *float64
}

// DebateOrchestrator owns the round-by-round debate state machine. Every
// mutating operation either durably persists or returns an error; session
// state must survive process restarts between rounds, so there is no
// in-memory fallback.
type DebateOrchestrator interface {
	OpenSession(ctx context.Context, conflict *model.Conflict, scope, initiator string) (*model.DebateSession, error)
	GetSession(ctx context.Context, sessionID int64) (*model.DebateSession, error)
	RecordArgument(ctx context.Context, sessionID int64, input ArgumentInput) (*model.Argument, error)
	Arguments(ctx context.Context, sessionID int64) ([]model.Argument, error)
	// AdvanceRound increments the session's round by one. At the round cap it
	// is an idempotent no-op and reports maxReached=true instead of erroring.
	AdvanceRound(ctx context.Context, sessionID int64) (*model.DebateSession, bool, error)
	CloseSession(ctx context.Context, sessionID int64, status model.SessionStatus, closedBy string) error
}

type debateOrchestrator struct {
	sessions  store.DebateSessionStore
	arguments store.ArgumentStore
	maxRounds int32
}

func NewDebateOrchestrator(sessions store.DebateSessionStore, arguments store.ArgumentStore, maxRounds int32) DebateOrchestrator {
	return &debateOrchestrator{
		sessions:  sessions,
		arguments: arguments,
		maxRounds: maxRounds,
	}
}

func (o *debateOrchestrator) OpenSession(ctx context.Context, conflict *model.Conflict, scope, initiator string) (*model.DebateSession, error) {
	session := &model.DebateSession{
		ID:                  id.New(),
		ConflictFingerprint: conflict.Fingerprint,
		Scope:               scope,
		ArtifactID:          conflict.ArtifactID,
		ConflictType:        conflict.Type,
		Status:              model.SessionStatusActive,
		CurrentRound:        1,
		MaxRounds:           o.maxRounds,
		InitiatedBy:         initiator,
	}

	if err := o.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("opening debate session: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{SessionID: logger.Ptr(session.ID), Fingerprint: logger.Ptr(conflict.Fingerprint)})
	slog.InfoContext(ctx, "debate session opened",
		"conflict_type", conflict.Type,
		"artifact_id", conflict.ArtifactID,
		"initiated_by", initiator,
	)

	return session, nil
}

func (o *debateOrchestrator) GetSession(ctx context.Context, sessionID int64) (*model.DebateSession, error) {
	session, err := o.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("getting debate session: %w", err)
	}
	return session, nil
}

func (o *debateOrchestrator) RecordArgument(ctx context.Context, sessionID int64, input ArgumentInput) (*model.Argument, error) {
	session, err := o.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("getting debate session: %w", err)
	}

	arg := &model.Argument{
		ID:              id.New(),
		SessionID:       session.ID,
		Round:           session.CurrentRound,
		ActorID:         input.ActorID,
		Kind:            input.Kind,
		Summary:         input.Summary,
		Reasoning:       input.Reasoning,
		CitedPrinciples: input.CitedPrinciples,
		EvidenceRefs:    input.EvidenceRefs,
		Strength:        input.Strength,
	}

	if err := o.arguments.Append(ctx, arg); err != nil {
		return nil, fmt.Errorf("recording argument: %w", err)
	}

	slog.DebugContext(ctx, "argument recorded",
		"session_id", session.ID,
		"round", arg.Round,
		"actor_id", arg.ActorID,
		"kind", arg.Kind,
		"summary", logger.Truncate(arg.Summary, 80),
	)

	return arg, nil
}

func (o *debateOrchestrator) Arguments(ctx context.Context, sessionID int64) ([]model.Argument, error) {
	args, err := o.arguments.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing arguments: %w", err)
	}
	return args, nil
}

func (o *debateOrchestrator) AdvanceRound(ctx context.Context, sessionID int64) (*model.DebateSession, bool, error) {
	session, err := o.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("getting debate session: %w", err)
	}

	if session.CurrentRound >= session.MaxRounds {
		return session, true, nil
	}

	updated, err := o.sessions.UpdateRound(ctx, sessionID, session.CurrentRound+1)
	if err != nil {
		return nil, false, fmt.Errorf("advancing round: %w", err)
	}

	slog.InfoContext(ctx, "debate round advanced", "session_id", sessionID, "round", updated.CurrentRound)
	return updated, false, nil
}

func (o *debateOrchestrator) CloseSession(ctx context.Context, sessionID int64, status model.SessionStatus, closedBy string) error {
	if err := o.sessions.Close(ctx, sessionID, status, closedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("closing debate session: %w", err)
	}

	slog.InfoContext(ctx, "debate session closed", "session_id", sessionID, "status", status, "closed_by", closedBy)
	return nil
}
