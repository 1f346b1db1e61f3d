package entities

import (
	"path"
	"time"
)

// File is the mirror document of the latest state of one path on one branch.
// History is kept in Commit.FilesChanged, never here.
type File struct {
	ID             string    `json:"id"               yaml:"id"`
	RepositoryID   string    `json:"repository_id"    yaml:"repository_id"`
	Branch         string    `json:"branch"           yaml:"branch"`
	Path           string    `json:"path"             yaml:"path"`
	Content        string    `json:"content"          yaml:"content,omitempty"`
	IsDirectory    bool      `json:"is_directory"     yaml:"is_directory"`
	LastModifiedBy string    `json:"last_modified_by" yaml:"last_modified_by"`
	UpdatedAt      time.Time `json:"updated_at"       yaml:"updated_at"`
}

// Name returns the last element of the file path.
func (f *File) Name() string {
	return path.Base(f.Path)
}

// Parent returns the directory holding the file, "" for the repository root.
func (f *File) Parent() string {
	return ParentDir(f.Path)
}

// FileInput is one entry of a change set: content to write, or a deletion.
type FileInput struct {
	Path     string `json:"path"      yaml:"path"`
	Content  string `json:"content"   yaml:"content"`
	IsDelete bool   `json:"is_delete" yaml:"is_delete"`
}

// TreeEntryType is the kind of an entry in a directory listing.
type TreeEntryType string

const (
	TreeEntryFile   TreeEntryType = "file"
	TreeEntryFolder TreeEntryType = "folder"
)

// TreeEntry is a single-level directory listing entry.
type TreeEntry struct {
	Name string        `json:"name" yaml:"name"`
	Type TreeEntryType `json:"type" yaml:"type"`
	Path string        `json:"path" yaml:"path"`
}

// ParentDir returns the slash-separated parent of p, "" for top-level entries.
func ParentDir(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
