package entities

import (
	"regexp"
	"strings"

	"golang.org/x/mod/module"
)

const maxFilePathLength = 4096

var (
	branchNamePattern = regexp.MustCompile(`^[A-Za-z0-9._/-]{1,255}$`)
	filePathPattern   = regexp.MustCompile(`^[A-Za-z0-9._/ -]+$`)
	projectIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)
)

// ValidateBranchName checks a branch name before it reaches git or the filesystem.
func ValidateBranchName(name string) error {
	if !branchNamePattern.MatchString(name) {
		return &ValidationError{
			Field:  "branch name",
			Value:  name,
			Reason: "must be 1-255 characters of letters, digits, '.', '_', '-' or '/'",
		}
	}
	switch {
	case strings.HasPrefix(name, "-"):
		return &ValidationError{Field: "branch name", Value: name, Reason: "must not start with '-'"}
	case strings.Contains(name, ".."):
		return &ValidationError{Field: "branch name", Value: name, Reason: "must not contain '..'"}
	case strings.HasPrefix(name, "/"), strings.HasSuffix(name, "/"), strings.Contains(name, "//"):
		return &ValidationError{Field: "branch name", Value: name, Reason: "must not have empty path components"}
	case strings.HasSuffix(name, ".lock"), strings.HasSuffix(name, "."):
		return &ValidationError{Field: "branch name", Value: name, Reason: "must not end with '.' or '.lock'"}
	}
	return nil
}

// ValidateFilePath checks a repository-relative file path before it is joined
// onto the working tree or passed to git.
func ValidateFilePath(p string) error {
	if p == "" || len(p) > maxFilePathLength {
		return &ValidationError{Field: "file path", Value: p, Reason: "must be 1-4096 characters"}
	}
	if !filePathPattern.MatchString(p) {
		return &ValidationError{
			Field:  "file path",
			Value:  p,
			Reason: "may only contain letters, digits, spaces, '.', '_', '-' and '/'",
		}
	}
	if strings.HasPrefix(p, "/") {
		return &ValidationError{Field: "file path", Value: p, Reason: "must be relative"}
	}
	if strings.HasPrefix(p, "-") {
		return &ValidationError{Field: "file path", Value: p, Reason: "must not start with '-'"}
	}
	if strings.Contains(p, "..") {
		return &ValidationError{Field: "file path", Value: p, Reason: "must not contain '..'"}
	}
	for _, elem := range strings.Split(p, "/") {
		if elem == ".git" {
			return &ValidationError{Field: "file path", Value: p, Reason: "must not address the git directory"}
		}
	}
	if err := module.CheckFilePath(p); err != nil {
		return &ValidationError{Field: "file path", Value: p, Reason: err.Error()}
	}
	return nil
}

// ValidateChangeSet checks the paths of one change set together: every path is
// valid, none is listed twice and none lies below another path of the set.
func ValidateChangeSet(files []FileInput) error {
	seen := make(map[string]bool, len(files))
	for _, file := range files {
		if err := ValidateFilePath(file.Path); err != nil {
			return err
		}
		if seen[file.Path] {
			return &ValidationError{Field: "file path", Value: file.Path, Reason: "listed more than once"}
		}
		seen[file.Path] = true
	}

	for _, file := range files {
		for dir := ParentDir(file.Path); dir != ""; dir = ParentDir(dir) {
			if seen[dir] {
				return &ValidationError{Field: "file path", Value: file.Path, Reason: dir + " is also in the change set"}
			}
		}
	}
	return nil
}

// ValidateDirectory checks an optional directory argument; "" means the repository root.
func ValidateDirectory(dir string) error {
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		return nil
	}
	return ValidateFilePath(dir)
}

// ValidateProjectID checks the project id that names the on-disk repository directory.
func ValidateProjectID(id string) error {
	if !projectIDPattern.MatchString(id) {
		return &ValidationError{
			Field:  "project id",
			Value:  id,
			Reason: "must be 1-128 characters of letters, digits, '_' or '-'",
		}
	}
	return nil
}
