package ports

import (
	"context"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
)

// EventPublisher forwards domain events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NoopEventPublisher drops every event.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(context.Context, domain.Event) error { return nil }

var _ EventPublisher = NoopEventPublisher{}
