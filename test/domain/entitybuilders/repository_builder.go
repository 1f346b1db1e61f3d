//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositoryBuilder helps create test repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	id            string
	projectID     string
	name          string
	defaultBranch string
	branches      []entities.BranchHead
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		id:            "repo-1",
		projectID:     "p1",
		name:          "test-repository",
		defaultBranch: "main",
		branches:      []entities.BranchHead{{Name: "main"}},
	}
}

// WithID sets the document id.
func (b *RepositoryBuilder) WithID(id string) *RepositoryBuilder {
	b.id = id
	return b
}

// WithProjectID sets the owning project.
func (b *RepositoryBuilder) WithProjectID(projectID string) *RepositoryBuilder {
	b.projectID = projectID
	return b
}

// WithName sets the display name.
func (b *RepositoryBuilder) WithName(name string) *RepositoryBuilder {
	b.name = name
	return b
}

// WithDefaultBranch sets the default branch and resets the head pointers to it.
func (b *RepositoryBuilder) WithDefaultBranch(branch string) *RepositoryBuilder {
	b.defaultBranch = branch
	b.branches = []entities.BranchHead{{Name: branch}}
	return b
}

// WithBranch adds a head pointer.
func (b *RepositoryBuilder) WithBranch(name, head string) *RepositoryBuilder {
	b.branches = append(b.branches, entities.BranchHead{Name: name, HeadCommit: head})
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type.
func (b *RepositoryBuilder) BuildRepository() *entities.Repository {
	now := time.Now().UTC()
	return &entities.Repository{
		ID:            b.id,
		ProjectID:     b.projectID,
		Name:          b.name,
		DefaultBranch: b.defaultBranch,
		Branches:      append([]entities.BranchHead(nil), b.branches...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = "repo-1"
	b.projectID = "p1"
	b.name = "test-repository"
	b.defaultBranch = "main"
	b.branches = []entities.BranchHead{{Name: "main"}}
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	return &RepositoryBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:            b.id,
		projectID:     b.projectID,
		name:          b.name,
		defaultBranch: b.defaultBranch,
		branches:      append([]entities.BranchHead(nil), b.branches...),
	}
}
