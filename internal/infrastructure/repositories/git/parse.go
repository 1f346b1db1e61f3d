package git

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

const (
	// fieldSep and recordSep are ASCII unit/record separators; neither can be
	// typed into a commit subject, so messages cannot desynchronize parsing.
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	// logFormat is hash, author name, author email, strict ISO date and subject.
	logFormat    = "--format=%H%x1f%an%x1f%ae%x1f%aI%x1f%s%x1e"
	logFieldsLen = 5

	diffHeaderPrefix = "diff --git "
	remotesPrefix    = "remotes/"
)

// parseLog parses output produced with logFormat.
func parseLog(output string) []entities.GitCommit {
	commits := make([]entities.GitCommit, 0)
	for _, record := range strings.Split(output, recordSep) {
		record = strings.TrimLeft(record, "\r\n")
		if record == "" {
			continue
		}

		fields := strings.Split(record, fieldSep)
		if len(fields) != logFieldsLen {
			continue
		}

		date, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			date = time.Time{}
		}

		commits = append(commits, entities.GitCommit{
			Hash:    fields[0],
			Author:  fields[1],
			Email:   fields[2],
			Date:    date,
			Message: fields[4],
		})
	}
	return commits
}

// numstatEntry is one line of `git diff --numstat`.
type numstatEntry struct {
	additions int
	deletions int
	binary    bool
}

// parseNumstat parses `git diff --numstat`; binary files ("-") count as zero.
func parseNumstat(output string) map[string]numstatEntry {
	stats := make(map[string]numstatEntry)
	for _, line := range strings.Split(output, "\n") {
		parts := strings.SplitN(line, "\t", 3) //nolint:mnd // additions, deletions, path
		if len(parts) < 3 {                    //nolint:mnd // need all three columns
			continue
		}

		var entry numstatEntry
		if parts[0] == "-" || parts[1] == "-" {
			entry.binary = true
		} else {
			entry.additions, _ = strconv.Atoi(parts[0])
			entry.deletions, _ = strconv.Atoi(parts[1])
		}
		stats[parts[2]] = entry
	}
	return stats
}

// nameStatusEntry is one line of `git diff --name-status`.
type nameStatusEntry struct {
	path   string
	status entities.DiffStatus
}

// parseNameStatus parses `git diff --name-status --no-renames` preserving git's order.
func parseNameStatus(output string) []nameStatusEntry {
	entries := make([]nameStatusEntry, 0)
	for _, line := range strings.Split(output, "\n") {
		code, filePath, ok := strings.Cut(line, "\t")
		if !ok || code == "" {
			continue
		}

		status := entities.DiffModified
		switch code[0] {
		case 'A':
			status = entities.DiffAdded
		case 'D':
			status = entities.DiffDeleted
		}
		entries = append(entries, nameStatusEntry{path: filePath, status: status})
	}
	return entries
}

// splitPatches splits a raw unified diff into per-file patches keyed by path.
// Diffs are produced with --no-renames, so both sides of a header name the same
// path and "a/<p> b/<p>" can be split at its midpoint even when p has spaces.
func splitPatches(raw string) map[string]string {
	patches := make(map[string]string)
	if raw == "" {
		return patches
	}

	chunks := strings.Split("\n"+raw, "\n"+diffHeaderPrefix)
	for _, chunk := range chunks[1:] {
		header, _, _ := strings.Cut(chunk, "\n")
		if len(header) < len("a/ b/")+1 {
			continue
		}
		half := (len(header) - 1) / 2 //nolint:mnd // "a/<p>" and "b/<p>" have equal length
		filePath := strings.TrimPrefix(header[:half], "a/")
		patches[filePath] = diffHeaderPrefix + strings.TrimRight(chunk, "\n") + "\n"
	}
	return patches
}

// parseBranches parses `git branch -a`, stripping the current-branch marker,
// remote prefixes and symbolic HEAD entries, and removing duplicates.
func parseBranches(output string) []string {
	seen := make(map[string]bool)
	branches := make([]string, 0)
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "* "))
		if name == "" || strings.Contains(name, "->") || strings.HasPrefix(name, "(") {
			continue
		}

		if strings.HasPrefix(name, remotesPrefix) {
			_, rest, found := strings.Cut(strings.TrimPrefix(name, remotesPrefix), "/")
			if !found {
				continue
			}
			name = rest
		}
		if name == "HEAD" || seen[name] {
			continue
		}

		seen[name] = true
		branches = append(branches, name)
	}
	return branches
}

// parseTree parses single-level `git ls-tree` output.
func parseTree(output string) []entities.TreeEntry {
	entries := make([]entities.TreeEntry, 0)
	for _, line := range strings.Split(output, "\n") {
		meta, entryPath, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}

		fields := strings.Fields(meta)
		if len(fields) < 3 { //nolint:mnd // mode, type, object
			continue
		}

		var entryType entities.TreeEntryType
		switch fields[1] {
		case "tree":
			entryType = entities.TreeEntryFolder
		case "blob":
			entryType = entities.TreeEntryFile
		default:
			continue
		}

		entries = append(entries, entities.TreeEntry{
			Name: path.Base(entryPath),
			Type: entryType,
			Path: entryPath,
		})
	}
	return entries
}

// isNothingToCommit matches git's report of an empty commit attempt.
func isNothingToCommit(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "nothing to commit") || strings.Contains(lower, "nothing added to commit")
}

// isConflict matches git's report of a conflicting merge.
func isConflict(output string) bool {
	return strings.Contains(strings.ToLower(output), "conflict")
}

// splitLines splits command output into non-empty trimmed lines.
func splitLines(output string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
