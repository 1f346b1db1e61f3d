//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/test/domain/entitybuilders"
)

func TestAnalyticsCommand(t *testing.T) {
	t.Parallel()

	t.Run("should count a commit shared by branches once", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		day := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
		initial := entitybuilders.NewGitCommitBuilder().
			WithHash("h0").WithAuthor("bot").WithDate(day).WithMessage("Initial commit").BuildGitCommit()
		onMain := entitybuilders.NewGitCommitBuilder().
			WithHash("h1").WithAuthor("alice").WithDate(day.Add(time.Hour)).BuildGitCommit()
		onFeature := entitybuilders.NewGitCommitBuilder().
			WithHash("h2").WithAuthor("alice").WithDate(day.Add(2 * time.Hour)).BuildGitCommit()
		byBob := entitybuilders.NewGitCommitBuilder().
			WithHash("h3").WithAuthor("bob").WithDate(day.Add(3 * time.Hour)).BuildGitCommit()
		f.git.Branches = []string{"main", "feature"}
		f.git.History = map[string][]entities.GitCommit{
			"main":    {onMain, initial},
			"feature": {byBob, onFeature, initial},
		}

		// when
		analytics, err := commands.NewAnalyticsCommand(f.settings, f.repos, f.git).Execute(context.Background(), "repo-1")

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, analytics.Branches)
		assert.Equal(t, 4, analytics.TotalCommits)
		assert.Equal(t, map[string]int{"main": 2, "feature": 3}, analytics.CommitsPerBranch)
		assert.Equal(t, []entities.ContributorStats{
			{Name: "alice", Commits: 2},
			{Name: "bob", Commits: 1},
			{Name: "bot", Commits: 1},
		}, analytics.Contributors)
		require.NotNil(t, analytics.FirstCommitAt)
		require.NotNil(t, analytics.LastCommitAt)
		assert.True(t, analytics.FirstCommitAt.Equal(day))
		assert.True(t, analytics.LastCommitAt.Equal(day.Add(3*time.Hour)))
	})

	t.Run("should report an empty summary without history", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.git.Branches = []string{"main"}

		// when
		analytics, err := commands.NewAnalyticsCommand(f.settings, f.repos, f.git).Execute(context.Background(), "repo-1")

		// then
		require.NoError(t, err)
		assert.Zero(t, analytics.TotalCommits)
		assert.Empty(t, analytics.Contributors)
		assert.Nil(t, analytics.FirstCommitAt)
	})

	t.Run("should fail when a branch history cannot be read", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.git.Branches = []string{"main", "feature"}
		f.git.HistoryErr = assert.AnError

		// when
		_, err := commands.NewAnalyticsCommand(f.settings, f.repos, f.git).Execute(context.Background(), "repo-1")

		// then
		assert.ErrorIs(t, err, assert.AnError)
	})
}
