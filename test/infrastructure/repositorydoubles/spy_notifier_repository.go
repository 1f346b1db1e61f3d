//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// SpyNotifierRepository implements repositories.NotifierRepository and records every event.
type SpyNotifierRepository struct {
	mu     sync.Mutex
	Events []entities.Event
}

var _ repositories.NotifierRepository = (*SpyNotifierRepository)(nil)

func (s *SpyNotifierRepository) Publish(_ context.Context, event entities.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
}

// Types returns the type of every published event in order.
func (s *SpyNotifierRepository) Types() []entities.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]entities.EventType, 0, len(s.Events))
	for _, event := range s.Events {
		types = append(types, event.Type)
	}
	return types
}
