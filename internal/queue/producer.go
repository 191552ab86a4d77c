package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ArbitrationEvent is the lifecycle record published for downstream pipeline
// observers (dashboards, approval pipelines) on a redis stream.
type ArbitrationEvent struct {
	Scope       string
	EventType   string
	Fingerprint string
	SessionID   *int64
	VerdictID   *int64
	Confidence  *float64
}

type Producer interface {
	Publish(ctx context.Context, ev ArbitrationEvent) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, ev ArbitrationEvent) error {
	fields := map[string]any{
		"scope":       ev.Scope,
		"event_type":  ev.EventType,
		"fingerprint": ev.Fingerprint,
	}

	if ev.SessionID != nil {
		fields["session_id"] = *ev.SessionID
	}
	if ev.VerdictID != nil {
		fields["verdict_id"] = *ev.VerdictID
	}
	if ev.Confidence != nil {
		fields["confidence"] = *ev.Confidence
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("publish arbitration event: %w", err)
	}

	p.logger.DebugContext(ctx, "published arbitration event", "scope", ev.Scope, "event_type", ev.EventType, "fingerprint", ev.Fingerprint)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
