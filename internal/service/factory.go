package service

import (
	"arbiterhq.io/arbiter/core/config"
	"arbiterhq.io/arbiter/internal/queue"
	"arbiterhq.io/arbiter/internal/store"
)

type ServicesConfig struct {
	Stores      *store.Stores
	Telemetry   queue.Producer // optional; nil disables the redis side-channel
	Arbitration config.ArbitrationConfig
}

type Services struct {
	stores      *store.Stores
	telemetry   queue.Producer
	arbitration config.ArbitrationConfig
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		stores:      cfg.Stores,
		telemetry:   cfg.Telemetry,
		arbitration: cfg.Arbitration,
	}
}

func (s *Services) Detector() ConflictDetector {
	return NewConflictDetector()
}

func (s *Services) AuditTrail() AuditTrail {
	return NewAuditTrail(s.stores.Audits(), s.telemetry, nil)
}

func (s *Services) RateLimiter() RateLimiter {
	return NewRateLimiter(
		s.stores.Sessions(),
		s.AuditTrail(),
		s.arbitration.MaxDebatesPerScope,
		s.arbitration.CooldownWindow,
		nil,
	)
}

func (s *Services) Orchestrator() DebateOrchestrator {
	return NewDebateOrchestrator(s.stores.Sessions(), s.stores.Arguments(), s.arbitration.MaxRounds)
}

func (s *Services) Citations() CitationAnalyzer {
	return NewCitationAnalyzer(DefaultRulebook())
}

func (s *Services) Verdicts() VerdictRenderer {
	return NewVerdictRenderer(
		s.stores.Verdicts(),
		NewReviewRequester(s.stores.ReviewRequests(), nil),
	)
}

func (s *Services) Coordinator() ArbitrationCoordinator {
	return NewArbitrationCoordinator(
		s.Detector(),
		s.RateLimiter(),
		s.Orchestrator(),
		s.Citations(),
		s.Verdicts(),
		s.AuditTrail(),
	)
}
