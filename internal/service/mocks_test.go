package service_test

import (
	"context"
	"sync"
	"time"

	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/store"
)

type mockSessionStore struct {
	createFn                      func(ctx context.Context, session *model.DebateSession) error
	getByIDFn                     func(ctx context.Context, id int64) (*model.DebateSession, error)
	updateRoundFn                 func(ctx context.Context, id int64, round int32) (*model.DebateSession, error)
	closeFn                       func(ctx context.Context, id int64, status model.SessionStatus, closedBy string, closedAt time.Time) error
	countOpenedSinceFn            func(ctx context.Context, scope string, since time.Time) (int, error)
	findMostRecentByFingerprintFn func(ctx context.Context, fingerprint string, since time.Time) (*model.DebateSession, error)
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.DebateSession) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, session)
}

func (m *mockSessionStore) GetByID(ctx context.Context, id int64) (*model.DebateSession, error) {
	if m.getByIDFn == nil {
		return nil, store.ErrNotFound
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockSessionStore) UpdateRound(ctx context.Context, id int64, round int32) (*model.DebateSession, error) {
	if m.updateRoundFn == nil {
		return nil, store.ErrNotFound
	}
	return m.updateRoundFn(ctx, id, round)
}

func (m *mockSessionStore) Close(ctx context.Context, id int64, status model.SessionStatus, closedBy string, closedAt time.Time) error {
	if m.closeFn == nil {
		return nil
	}
	return m.closeFn(ctx, id, status, closedBy, closedAt)
}

func (m *mockSessionStore) CountOpenedSince(ctx context.Context, scope string, since time.Time) (int, error) {
	if m.countOpenedSinceFn == nil {
		return 0, nil
	}
	return m.countOpenedSinceFn(ctx, scope, since)
}

func (m *mockSessionStore) FindMostRecentByFingerprint(ctx context.Context, fingerprint string, since time.Time) (*model.DebateSession, error) {
	if m.findMostRecentByFingerprintFn == nil {
		return nil, store.ErrNotFound
	}
	return m.findMostRecentByFingerprintFn(ctx, fingerprint, since)
}

type mockVerdictStore struct {
	createFn       func(ctx context.Context, verdict *model.Verdict) error
	getBySessionFn func(ctx context.Context, sessionID int64) (*model.Verdict, error)
}

func (m *mockVerdictStore) Create(ctx context.Context, verdict *model.Verdict) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, verdict)
}

func (m *mockVerdictStore) GetBySession(ctx context.Context, sessionID int64) (*model.Verdict, error) {
	if m.getBySessionFn == nil {
		return nil, store.ErrNotFound
	}
	return m.getBySessionFn(ctx, sessionID)
}

type mockReviewStore struct {
	createFn func(ctx context.Context, req *model.ReviewRequest) error
}

func (m *mockReviewStore) Create(ctx context.Context, req *model.ReviewRequest) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, req)
}

type recordedAudit struct {
	scope     string
	eventType string
	details   map[string]any
}

// recordingAuditTrail captures audit calls for assertions without touching a
// store.
type recordingAuditTrail struct {
	mu     sync.Mutex
	events []recordedAudit
}

func (r *recordingAuditTrail) Record(_ context.Context, scope, eventType string, details map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedAudit{scope: scope, eventType: eventType, details: details})
}

func (r *recordingAuditTrail) byType(eventType string) []recordedAudit {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []recordedAudit
	for _, ev := range r.events {
		if ev.eventType == eventType {
			out = append(out, ev)
		}
	}
	return out
}

type recordedReview struct {
	sourceType string
	sourceID   int64
	reason     string
	priority   model.ReviewPriority
	metadata   map[string]any
}

type recordingReviewRequester struct {
	mu       sync.Mutex
	requests []recordedReview
}

func (r *recordingReviewRequester) Request(_ context.Context, sourceType string, sourceID int64, reason string, priority model.ReviewPriority, metadata map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, recordedReview{
		sourceType: sourceType,
		sourceID:   sourceID,
		reason:     reason,
		priority:   priority,
		metadata:   metadata,
	})
}

func (r *recordingReviewRequester) all() []recordedReview {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedReview(nil), r.requests...)
}

// memStore is an in-memory implementation of every store contract, used to
// exercise the orchestrator and coordinator end to end.
type memStore struct {
	mu               sync.Mutex
	sessions         map[int64]*model.DebateSession
	arguments        map[int64][]model.Argument
	verdicts         map[int64]*model.Verdict
	audits           []model.AuditEvent
	reviews          []model.ReviewRequest
	verdictCreateErr error
}

func newMemStore() *memStore {
	return &memStore{
		sessions:  make(map[int64]*model.DebateSession),
		arguments: make(map[int64][]model.Argument),
		verdicts:  make(map[int64]*model.Verdict),
	}
}

func (s *memStore) Create(ctx context.Context, session *model.DebateSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *session
	if stored.OpenedAt.IsZero() {
		stored.OpenedAt = time.Now().UTC()
	}
	s.sessions[stored.ID] = &stored
	session.OpenedAt = stored.OpenedAt
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id int64) (*model.DebateSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *memStore) UpdateRound(ctx context.Context, id int64, round int32) (*model.DebateSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	session.CurrentRound = round
	copied := *session
	return &copied, nil
}

func (s *memStore) Close(ctx context.Context, id int64, status model.SessionStatus, closedBy string, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return store.ErrNotFound
	}
	session.Status = status
	session.ClosedBy = &closedBy
	session.ClosedAt = &closedAt
	return nil
}

func (s *memStore) CountOpenedSince(ctx context.Context, scope string, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, session := range s.sessions {
		if session.Scope == scope && !session.OpenedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *memStore) FindMostRecentByFingerprint(ctx context.Context, fingerprint string, since time.Time) (*model.DebateSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *model.DebateSession
	for _, session := range s.sessions {
		if session.ConflictFingerprint != fingerprint || session.OpenedAt.Before(since) {
			continue
		}
		if latest == nil || session.OpenedAt.After(latest.OpenedAt) {
			latest = session
		}
	}
	if latest == nil {
		return nil, store.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *memStore) Append(ctx context.Context, arg *model.Argument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *arg
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.arguments[stored.SessionID] = append(s.arguments[stored.SessionID], stored)
	arg.CreatedAt = stored.CreatedAt
	return nil
}

func (s *memStore) ListBySession(ctx context.Context, sessionID int64) ([]model.Argument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Argument(nil), s.arguments[sessionID]...), nil
}

func (s *memStore) CreateVerdict(ctx context.Context, verdict *model.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verdictCreateErr != nil {
		return s.verdictCreateErr
	}
	stored := *verdict
	s.verdicts[stored.SessionID] = &stored
	return nil
}

func (s *memStore) GetBySession(ctx context.Context, sessionID int64) (*model.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	verdict, ok := s.verdicts[sessionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *verdict
	return &copied, nil
}

func (s *memStore) Record(ctx context.Context, event *model.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, *event)
	return nil
}

func (s *memStore) CreateReview(ctx context.Context, req *model.ReviewRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = append(s.reviews, *req)
	return nil
}

func (s *memStore) auditsByType(eventType string) []model.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.AuditEvent
	for _, ev := range s.audits {
		if ev.EventType == eventType {
			out = append(out, ev)
		}
	}
	return out
}

func (s *memStore) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *memStore) onlySession() *model.DebateSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		copied := *session
		return &copied
	}
	return nil
}

// memVerdictStore adapts memStore to the verdict contract; Create would
// otherwise collide with the session store method.
type memVerdictStore struct{ *memStore }

func (s memVerdictStore) Create(ctx context.Context, verdict *model.Verdict) error {
	return s.CreateVerdict(ctx, verdict)
}

// memReviewStore adapts memStore to the review request contract.
type memReviewStore struct{ *memStore }

func (s memReviewStore) Create(ctx context.Context, req *model.ReviewRequest) error {
	return s.CreateReview(ctx, req)
}
