package entities

// DiffStatus is the per-path status of a diff entry.
type DiffStatus string

const (
	DiffAdded    DiffStatus = "added"
	DiffDeleted  DiffStatus = "deleted"
	DiffModified DiffStatus = "modified"
)

// DiffSource selects where a diff is computed from.
type DiffSource string

const (
	// DiffSourceContent compares the File documents of the mirror.
	DiffSourceContent DiffSource = "content"
	// DiffSourceGit compares refs inside the on-disk repository.
	DiffSourceGit DiffSource = "git"
)

// FileDiff is one entry of a diff as presented to callers.
type FileDiff struct {
	FilePath  string     `json:"file_path" yaml:"file_path"`
	Patch     string     `json:"patch"     yaml:"patch"`
	Status    DiffStatus `json:"status"    yaml:"status"`
	Additions int        `json:"additions" yaml:"additions"`
	Deletions int        `json:"deletions" yaml:"deletions"`
}
