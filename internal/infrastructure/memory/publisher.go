package memory

import (
	"context"
	"sync"

	"github.com/ultimatetechie/ecommerce-api/internal/application/accounts"
)

// Publisher swallows events when no broker is configured. It records
// them so tests can assert on what would have been published.
type Publisher struct {
	mu     sync.Mutex
	Events []accounts.UserCreatedEvent
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) PublishUserCreated(ctx context.Context, evt accounts.UserCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, evt)
	return nil
}
