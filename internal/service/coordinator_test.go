package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/service"
)

var _ = Describe("ArbitrationCoordinator", func() {
	const scope = "checkout-service"

	var (
		ctx         context.Context
		mem         *memStore
		coordinator service.ArbitrationCoordinator
	)

	rec := func(actor, category, text string, strength float64) model.Recommendation {
		return model.Recommendation{
			ActorID:    actor,
			ArtifactID: "auth.go",
			Category:   category,
			Text:       text,
			Confidence: &strength,
		}
	}

	conflicting := func() []model.Recommendation {
		return []model.Recommendation{
			rec("security-engineer", "security", "encrypt credentials before storing them", 0.9),
			rec("performance-engineer", "performance", "cache tokens unencrypted to cut latency", 0.4),
		}
	}

	newCoordinator := func() service.ArbitrationCoordinator {
		audit := service.NewAuditTrail(mem, nil, nil)
		limiter := service.NewRateLimiter(mem, audit, 3, 24*time.Hour, nil)
		orchestrator := service.NewDebateOrchestrator(mem, mem, 3)
		citations := service.NewCitationAnalyzer(service.DefaultRulebook())
		reviews := service.NewReviewRequester(memReviewStore{mem}, nil)
		renderer := service.NewVerdictRenderer(memVerdictStore{mem}, reviews)
		return service.NewArbitrationCoordinator(
			service.NewConflictDetector(),
			limiter,
			orchestrator,
			citations,
			renderer,
			audit,
		)
	}

	BeforeEach(func() {
		ctx = context.Background()
		mem = newMemStore()
		coordinator = newCoordinator()
	})

	It("passes with a warning when fewer than two recommendations arrive", func() {
		result := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			Recommendations: conflicting()[:1],
		})

		Expect(result.Verdict).To(Equal(service.ResultPass))
		Expect(result.Confidence).To(Equal(100))
		Expect(result.Warnings).To(HaveLen(1))
		Expect(mem.sessionCount()).To(BeZero())
	})

	It("passes without a debate when the positions agree", func() {
		agreeing := []model.Recommendation{
			rec("security-engineer", "security", "use argon2 for password hashing", 0.9),
			rec("performance-engineer", "performance", "use argon2 for password hashing", 0.8),
		}

		result := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			Recommendations: agreeing,
		})

		Expect(result.Verdict).To(Equal(service.ResultPass))
		Expect(result.Confidence).To(Equal(100))
		Expect(result.DetailedAnalysis.ConflictDetected).To(BeFalse())
		Expect(mem.sessionCount()).To(BeZero())
	})

	It("runs a full debate for a security versus performance conflict", func() {
		result := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			Recommendations: conflicting(),
		})

		analysis := result.DetailedAnalysis
		Expect(analysis.ConflictDetected).To(BeTrue())
		Expect(analysis.ConflictType).To(Equal(model.ConflictTypeSecurity))
		Expect(analysis.Fingerprint).To(HaveLen(service.FingerprintLength))
		Expect(analysis.SimilarityScore).To(HaveValue(BeNumerically("==", 0)))
		Expect(analysis.DebateSessionID).NotTo(BeNil())
		Expect(analysis.VerdictID).NotTo(BeNil())

		// Both initial positions cite their own principle at equal relevance,
		// so confidence lands at 0.53 and the verdict escalates.
		Expect(result.Verdict).To(Equal(service.ResultConditionalPass))
		Expect(result.Confidence).To(Equal(53))
		Expect(result.Recommendations).To(ContainElement(ContainSubstring("security-engineer")))

		session := mem.onlySession()
		Expect(session).NotTo(BeNil())
		Expect(session.Status).To(Equal(model.SessionStatusEscalated))
		Expect(session.ClosedBy).To(HaveValue(Equal(service.ClosedByCoordinator)))

		verdict, err := mem.GetBySession(ctx, session.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(verdict.Kind).To(Equal(model.VerdictKindSelected))
		Expect(verdict.WinnerID).To(HaveValue(Equal("security-engineer")))
		Expect(verdict.EscalationRequired).To(BeTrue())

		arguments, err := mem.ListBySession(ctx, session.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(arguments).To(HaveLen(2))
		Expect(arguments[0].Kind).To(Equal(model.ArgumentKindInitialPosition))
		Expect(arguments[0].Round).To(Equal(int32(1)))

		Expect(mem.auditsByType(model.AuditEventDebateCompleted)).To(HaveLen(1))
		Expect(mem.reviews).To(HaveLen(1))
	})

	It("defers when both positions carry equal strength", func() {
		tied := []model.Recommendation{
			rec("security-engineer", "security", "encrypt credentials before storing them", 0.7),
			rec("performance-engineer", "performance", "cache tokens unencrypted to cut latency", 0.7),
		}

		result := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			Recommendations: tied,
		})

		Expect(result.Recommendations).To(ContainElement(ContainSubstring("no winner")))

		verdict, err := mem.GetBySession(ctx, *result.DetailedAnalysis.DebateSessionID)
		Expect(err).NotTo(HaveOccurred())
		Expect(verdict.Kind).To(Equal(model.VerdictKindDefer))
		Expect(verdict.WinnerID).To(BeNil())
	})

	It("blocks when the scope exhausted its arbitration budget", func() {
		for i := int64(1); i <= 3; i++ {
			Expect(mem.Create(ctx, &model.DebateSession{
				ID:                  i,
				ConflictFingerprint: "unrelated",
				Scope:               scope,
				Status:              model.SessionStatusVerdictRendered,
			})).To(Succeed())
		}

		result := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			Recommendations: conflicting(),
		})

		Expect(result.Verdict).To(Equal(service.ResultBlocked))
		Expect(result.Confidence).To(BeZero())
		Expect(result.DetailedAnalysis.ConflictDetected).To(BeTrue())
		Expect(result.Warnings).NotTo(BeEmpty())
		Expect(mem.sessionCount()).To(Equal(3))
		Expect(mem.auditsByType(model.AuditEventDebateBlocked)).To(HaveLen(1))
	})

	It("blocks a repeat of the same conflict within the cooldown", func() {
		first := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			Recommendations: conflicting(),
		})
		Expect(first.Verdict).To(Equal(service.ResultConditionalPass))

		second := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			Recommendations: conflicting(),
		})

		Expect(second.Verdict).To(Equal(service.ResultBlocked))
		Expect(second.Warnings).To(ContainElement(ContainSubstring("cooldown")))
		Expect(second.Warnings).To(ContainElement(ContainSubstring("retry after")))
		Expect(mem.sessionCount()).To(Equal(1))
	})

	It("detects but does not debate on a dry run", func() {
		result := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			DryRun:          true,
			Recommendations: conflicting(),
		})

		Expect(result.Verdict).To(Equal(service.ResultPass))
		Expect(result.Confidence).To(Equal(100))
		Expect(result.DetailedAnalysis.ConflictDetected).To(BeTrue())
		Expect(result.DetailedAnalysis.DebateSessionID).To(BeNil())
		Expect(result.Warnings).To(ContainElement(ContainSubstring("dry run")))
		Expect(mem.sessionCount()).To(BeZero())
	})

	It("converts internal failures into a FAIL result", func() {
		mem.verdictCreateErr = errors.New("connection refused")

		result := coordinator.Arbitrate(ctx, service.ArbitrationRequest{
			Scope:           scope,
			Initiator:       "pipeline",
			Recommendations: conflicting(),
		})

		Expect(result.Verdict).To(Equal(service.ResultFail))
		Expect(result.Confidence).To(BeZero())
		Expect(result.CriticalIssues).To(HaveLen(1))
		Expect(result.CriticalIssues[0]).To(ContainSubstring("persisting verdict"))
		Expect(mem.auditsByType(model.AuditEventDebateFailed)).To(HaveLen(1))
	})
})
