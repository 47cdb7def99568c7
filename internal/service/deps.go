package service

import (
	"context"
	"io"
	"time"

	"github.com/samaj-issue/api/internal/logging"
)

// Collaborators are injected at construction so the services stay testable
// with substitutes. All calls are synchronous and bounded by the request
// lifetime; nothing here retries.

type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

type ObjectStorage interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}

// publishEvent emits a domain event. Delivery failures are logged, never
// surfaced: events are best effort and must not fail the request.
func publishEvent(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Publish(pctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "error", err)
	}
}
