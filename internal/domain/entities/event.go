package entities

import "time"

// EventType names an event published to the notification collaborator.
type EventType string

const (
	EventCommitCreated EventType = "commit.created"
	EventBranchCreated EventType = "branch.created"
	EventBranchMerged  EventType = "branch.merged"
)

// Event is emitted after a version-control action succeeded.
type Event struct {
	Type         EventType `json:"type"`
	RepositoryID string    `json:"repository_id"`
	ProjectID    string    `json:"project_id"`
	Branch       string    `json:"branch"`
	Actor        string    `json:"actor"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	OccurredAt   time.Time `json:"occurred_at"`
}
