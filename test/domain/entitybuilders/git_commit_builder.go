//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// GitCommitBuilder helps create git history entries with a fluent interface.
type GitCommitBuilder struct {
	*testkit.BaseBuilder
	hash    string
	author  string
	email   string
	date    time.Time
	message string
}

// NewGitCommitBuilder creates a new git commit builder with sensible defaults.
func NewGitCommitBuilder() *GitCommitBuilder {
	return &GitCommitBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		hash:        "0123456789abcdef0123456789abcdef01234567",
		author:      "Test Author",
		email:       "author@example.com",
		date:        time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
		message:     "test commit",
	}
}

// WithHash sets the commit hash.
func (b *GitCommitBuilder) WithHash(hash string) *GitCommitBuilder {
	b.hash = hash
	return b
}

// WithAuthor sets the author name.
func (b *GitCommitBuilder) WithAuthor(author string) *GitCommitBuilder {
	b.author = author
	return b
}

// WithDate sets the author date.
func (b *GitCommitBuilder) WithDate(date time.Time) *GitCommitBuilder {
	b.date = date
	return b
}

// WithMessage sets the subject line.
func (b *GitCommitBuilder) WithMessage(message string) *GitCommitBuilder {
	b.message = message
	return b
}

// Build creates the commit (satisfies testkit.Builder interface).
func (b *GitCommitBuilder) Build() interface{} {
	return b.BuildGitCommit()
}

// BuildGitCommit creates the commit with a concrete return type.
func (b *GitCommitBuilder) BuildGitCommit() entities.GitCommit {
	return entities.GitCommit{
		Hash:    b.hash,
		Author:  b.author,
		Email:   b.email,
		Date:    b.date,
		Message: b.message,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *GitCommitBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	fresh := NewGitCommitBuilder()
	b.hash = fresh.hash
	b.author = fresh.author
	b.email = fresh.email
	b.date = fresh.date
	b.message = fresh.message
	return b
}

// Clone creates a deep copy of the GitCommitBuilder.
func (b *GitCommitBuilder) Clone() testkit.Builder {
	return &GitCommitBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		hash:        b.hash,
		author:      b.author,
		email:       b.email,
		date:        b.date,
		message:     b.message,
	}
}
