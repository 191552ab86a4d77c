package main

import (
	"context"
	"log/slog"
	"os"

	"arbiterhq.io/arbiter/core/config"
	"arbiterhq.io/arbiter/core/db"
)

const schema = `
CREATE TABLE IF NOT EXISTS debate_sessions (
	id BIGINT PRIMARY KEY,
	conflict_fingerprint TEXT NOT NULL,
	scope TEXT NOT NULL,
	artifact_id TEXT NOT NULL,
	conflict_type TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'active',
	current_round INTEGER NOT NULL DEFAULT 1,
	max_rounds INTEGER NOT NULL DEFAULT 3,
	initiated_by TEXT NOT NULL,
	opened_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	closed_at TIMESTAMPTZ,
	closed_by TEXT
);

CREATE INDEX IF NOT EXISTS idx_debate_sessions_scope_opened
	ON debate_sessions (scope, opened_at);
CREATE INDEX IF NOT EXISTS idx_debate_sessions_fingerprint_opened
	ON debate_sessions (conflict_fingerprint, opened_at DESC);

CREATE TABLE IF NOT EXISTS debate_arguments (
	id BIGINT PRIMARY KEY,
	session_id BIGINT NOT NULL REFERENCES debate_sessions(id) ON DELETE CASCADE,
	round INTEGER NOT NULL,
	actor_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	summary TEXT NOT NULL,
	reasoning TEXT NOT NULL DEFAULT '',
	cited_principles TEXT[],
	evidence_refs TEXT[],
	strength DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_debate_arguments_session_created
	ON debate_arguments (session_id, created_at);

CREATE TABLE IF NOT EXISTS debate_verdicts (
	id BIGINT PRIMARY KEY,
	session_id BIGINT NOT NULL UNIQUE REFERENCES debate_sessions(id) ON DELETE CASCADE,
	winner_id TEXT,
	verdict_kind TEXT NOT NULL,
	confidence_score DOUBLE PRECISION NOT NULL,
	constitutional_score DOUBLE PRECISION NOT NULL,
	citations JSONB NOT NULL DEFAULT '[]',
	escalation_required BOOLEAN NOT NULL DEFAULT FALSE,
	escalation_reason TEXT,
	rationale TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS audit_events (
	id BIGINT PRIMARY KEY,
	scope TEXT NOT NULL,
	event_type TEXT NOT NULL,
	details JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_audit_events_scope_created
	ON audit_events (scope, created_at);

CREATE TABLE IF NOT EXISTS review_requests (
	id BIGINT PRIMARY KEY,
	source_type TEXT NOT NULL,
	source_id BIGINT NOT NULL,
	reason TEXT NOT NULL,
	priority TEXT NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if _, err := database.Pool().Exec(ctx, schema); err != nil {
		slog.ErrorContext(ctx, "failed to create schema", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "arbiter schema created")
}
