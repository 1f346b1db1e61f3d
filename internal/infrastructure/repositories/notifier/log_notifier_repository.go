package notifier

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// LogNotifierRepository publishes events as structured log entries, which is
// the activity feed when gitvault runs without a notification service.
type LogNotifierRepository struct {
	log logger.FieldLogger
}

var _ repositories.NotifierRepository = (*LogNotifierRepository)(nil)

// NewLogNotifierRepository creates a notifier writing to the standard logger.
func NewLogNotifierRepository() *LogNotifierRepository {
	return &LogNotifierRepository{log: logger.StandardLogger()}
}

// NewLogNotifierRepositoryWithLogger creates a notifier writing to the given logger.
func NewLogNotifierRepositoryWithLogger(log logger.FieldLogger) *LogNotifierRepository {
	return &LogNotifierRepository{log: log}
}

func (n *LogNotifierRepository) Publish(_ context.Context, event entities.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	n.log.WithFields(logger.Fields{
		"event":         string(event.Type),
		"repository_id": event.RepositoryID,
		"project_id":    event.ProjectID,
		"branch":        event.Branch,
		"actor":         event.Actor,
		"subject":       event.Subject,
		"occurred_at":   event.OccurredAt.Format(time.RFC3339),
	}).Info(event.Message)
}
