package entities

import "time"

// ContributorStats counts the distinct commits of one author.
type ContributorStats struct {
	Name    string `json:"name"    yaml:"name"`
	Commits int    `json:"commits" yaml:"commits"`
}

// RepositoryAnalytics summarizes the history of every branch of a repository.
// A commit reachable from several branches is counted once.
type RepositoryAnalytics struct {
	Branches         int                `json:"branches"           yaml:"branches"`
	TotalCommits     int                `json:"total_commits"      yaml:"total_commits"`
	CommitsPerBranch map[string]int     `json:"commits_per_branch" yaml:"commits_per_branch"`
	Contributors     []ContributorStats `json:"contributors"       yaml:"contributors"`
	FirstCommitAt    *time.Time         `json:"first_commit_at"    yaml:"first_commit_at,omitempty"`
	LastCommitAt     *time.Time         `json:"last_commit_at"     yaml:"last_commit_at,omitempty"`
}

// ReconcileReport counts the File documents touched while rebuilding a branch from git.
type ReconcileReport struct {
	Branch  string `json:"branch"  yaml:"branch"`
	Added   int    `json:"added"   yaml:"added"`
	Updated int    `json:"updated" yaml:"updated"`
	Removed int    `json:"removed" yaml:"removed"`
}

// RepositoryStats combines the git counters of a repository with the tip of its default branch.
type RepositoryStats struct {
	RepoStats    `yaml:",inline"`
	Branches     int        `json:"branches"      yaml:"branches"`
	LatestCommit *GitCommit `json:"latest_commit" yaml:"latest_commit,omitempty"`
}
