package entities

import "time"

// RepoState is the lifecycle state of an on-disk repository.
type RepoState int

const (
	// RepoUninitialized means no git directory exists for the project yet.
	RepoUninitialized RepoState = iota
	// RepoInitialized means the git directory exists but holds no commit.
	RepoInitialized
	// RepoReady means the repository has at least the initial commit.
	RepoReady
)

func (s RepoState) String() string {
	switch s {
	case RepoUninitialized:
		return "uninitialized"
	case RepoInitialized:
		return "initialized"
	case RepoReady:
		return "ready"
	default:
		return "unknown"
	}
}

// GitCommit is a commit as reported by git itself.
type GitCommit struct {
	Hash    string    `json:"hash"    yaml:"hash"`
	Author  string    `json:"author"  yaml:"author"`
	Email   string    `json:"email"   yaml:"email"`
	Date    time.Time `json:"date"    yaml:"date"`
	Message string    `json:"message" yaml:"message"`
}

// GitFileDiff is the per-file part of a git-level diff.
type GitFileDiff struct {
	Path      string     `json:"path"      yaml:"path"`
	Status    DiffStatus `json:"status"    yaml:"status"`
	Additions int        `json:"additions" yaml:"additions"`
	Deletions int        `json:"deletions" yaml:"deletions"`
	Binary    bool       `json:"binary"    yaml:"binary"`
	Patch     string     `json:"patch"     yaml:"patch"`
}

// GitDiff is the result of comparing two refs with git.
type GitDiff struct {
	Raw   string        `json:"raw"   yaml:"raw"`
	Files []GitFileDiff `json:"files" yaml:"files"`
}

// MergeResult describes the outcome of a merge attempt.
type MergeResult struct {
	Success   bool     `json:"success"   yaml:"success"`
	Hash      string   `json:"hash"      yaml:"hash,omitempty"`
	Conflicts []string `json:"conflicts" yaml:"conflicts,omitempty"`
}

// BranchResult describes the outcome of a branch creation.
type BranchResult struct {
	Name    string `json:"name"    yaml:"name"`
	From    string `json:"from"    yaml:"from"`
	Hash    string `json:"hash"    yaml:"hash"`
	Existed bool   `json:"existed" yaml:"existed"`
}

// RepoStats holds aggregate counters of an on-disk repository.
// Contributors are counted by author name, so one person committing under two
// emails counts once and two people sharing a name count once.
type RepoStats struct {
	Commits      int `json:"commits"      yaml:"commits"`
	Contributors int `json:"contributors" yaml:"contributors"`
	Files        int `json:"files"        yaml:"files"`
}
