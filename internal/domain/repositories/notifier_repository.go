package repositories

import (
	"context"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// NotifierRepository hands events to the notification and activity collaborator.
// Publishing never fails the action that produced the event.
type NotifierRepository interface {
	Publish(ctx context.Context, event entities.Event)
}
