package handler_test

import (
	"context"

	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/service"
	"arbiterhq.io/arbiter/internal/store"
)

type mockCoordinator struct {
	arbitrateFn func(ctx context.Context, req service.ArbitrationRequest) *service.ArbitrationResult
}

func (m *mockCoordinator) Arbitrate(ctx context.Context, req service.ArbitrationRequest) *service.ArbitrationResult {
	return m.arbitrateFn(ctx, req)
}

type mockOrchestrator struct {
	getSessionFn func(ctx context.Context, sessionID int64) (*model.DebateSession, error)
	argumentsFn  func(ctx context.Context, sessionID int64) ([]model.Argument, error)
}

func (m *mockOrchestrator) OpenSession(_ context.Context, _ *model.Conflict, _, _ string) (*model.DebateSession, error) {
	panic("not expected")
}

func (m *mockOrchestrator) GetSession(ctx context.Context, sessionID int64) (*model.DebateSession, error) {
	if m.getSessionFn == nil {
		return nil, store.ErrNotFound
	}
	return m.getSessionFn(ctx, sessionID)
}

func (m *mockOrchestrator) RecordArgument(_ context.Context, _ int64, _ service.ArgumentInput) (*model.Argument, error) {
	panic("not expected")
}

func (m *mockOrchestrator) Arguments(ctx context.Context, sessionID int64) ([]model.Argument, error) {
	if m.argumentsFn == nil {
		return nil, nil
	}
	return m.argumentsFn(ctx, sessionID)
}

func (m *mockOrchestrator) AdvanceRound(_ context.Context, _ int64) (*model.DebateSession, bool, error) {
	panic("not expected")
}

func (m *mockOrchestrator) CloseSession(_ context.Context, _ int64, _ model.SessionStatus, _ string) error {
	panic("not expected")
}

type mockVerdictStore struct {
	getBySessionFn func(ctx context.Context, sessionID int64) (*model.Verdict, error)
}

func (m *mockVerdictStore) Create(_ context.Context, _ *model.Verdict) error {
	panic("not expected")
}

func (m *mockVerdictStore) GetBySession(ctx context.Context, sessionID int64) (*model.Verdict, error) {
	if m.getBySessionFn == nil {
		return nil, store.ErrNotFound
	}
	return m.getBySessionFn(ctx, sessionID)
}
