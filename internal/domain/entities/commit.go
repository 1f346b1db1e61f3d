package entities

import "time"

// ChangeType classifies a file change inside a commit.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeModify ChangeType = "modify"
	ChangeDelete ChangeType = "delete"
)

// FileChange represents a file modification recorded in a commit, old and new content verbatim.
type FileChange struct {
	Path       string     `json:"path"        yaml:"path"`
	ChangeType ChangeType `json:"change_type" yaml:"change_type"`
	OldContent string     `json:"old_content" yaml:"old_content,omitempty"`
	NewContent string     `json:"new_content" yaml:"new_content,omitempty"`
}

// CommitStats holds the line counts of a commit.
type CommitStats struct {
	Additions int `json:"additions" yaml:"additions"`
	Deletions int `json:"deletions" yaml:"deletions"`
}

// Commit is the immutable mirror record of a change set.
// Hash is generated locally and is not a git object id; GitHash holds the id of
// the git commit produced by the mirror step when that step succeeded.
type Commit struct {
	ID           string       `json:"id"            yaml:"id"`
	RepositoryID string       `json:"repository_id" yaml:"repository_id"`
	Author       string       `json:"author"        yaml:"author"`
	Message      string       `json:"message"       yaml:"message"`
	Branch       string       `json:"branch"        yaml:"branch"`
	Hash         string       `json:"hash"          yaml:"hash"`
	GitHash      string       `json:"git_hash"      yaml:"git_hash,omitempty"`
	Mirrored     bool         `json:"mirrored"      yaml:"mirrored"`
	MirrorError  string       `json:"mirror_error"  yaml:"mirror_error,omitempty"`
	FilesChanged []FileChange `json:"files_changed" yaml:"files_changed"`
	Stats        CommitStats  `json:"stats"         yaml:"stats"`
	CreatedAt    time.Time    `json:"created_at"    yaml:"created_at"`
}

// Author identifies who a change is attributed to.
type Author struct {
	Name  string
	Email string
}

// IsZero reports whether no author override was given.
func (a Author) IsZero() bool {
	return a.Name == "" && a.Email == ""
}
