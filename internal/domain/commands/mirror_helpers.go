package commands

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

const (
	diffContextLines = 3
	noNewlineMarker  = `\ No newline at end of file`
)

// findRepository resolves a repository by document id, then by project id.
func findRepository(
	ctx context.Context,
	store repositories.RepositoryStore,
	ref string,
) (*entities.Repository, error) {
	repo, err := store.Get(ctx, ref)
	if err == nil {
		return repo, nil
	}
	if !entities.IsNotFound(err) {
		return nil, err
	}
	return store.GetByProject(ctx, ref)
}

// branchOrDefault validates branch, substituting the repository default when empty.
func branchOrDefault(repo *entities.Repository, branch string) (string, error) {
	if branch == "" {
		branch = repo.DefaultBranch
	}
	if err := entities.ValidateBranchName(branch); err != nil {
		return "", err
	}
	return branch, nil
}

// contentLines splits content into lines keeping their terminators. An
// unterminated last line stays unterminated, so "a" and "a\n" differ.
func contentLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// patchLines is contentLines with git's marker after an unterminated last line.
func patchLines(content string) []string {
	lines := contentLines(content)
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		lines[n-1] += "\n" + noNewlineMarker + "\n"
	}
	return lines
}

// lineStats counts the lines added and removed between two contents.
func lineStats(oldContent, newContent string) entities.CommitStats {
	var stats entities.CommitStats
	matcher := difflib.NewMatcher(contentLines(oldContent), contentLines(newContent))
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			stats.Deletions += op.I2 - op.I1
			stats.Additions += op.J2 - op.J1
		case 'd':
			stats.Deletions += op.I2 - op.I1
		case 'i':
			stats.Additions += op.J2 - op.J1
		}
	}
	return stats
}

// unifiedPatch renders a unified diff of one path; /dev/null stands for a missing side.
func unifiedPatch(path string, oldContent, newContent string, status entities.DiffStatus) (string, error) {
	fromFile, toFile := "a/"+path, "b/"+path
	switch status {
	case entities.DiffAdded:
		fromFile = "/dev/null"
	case entities.DiffDeleted:
		toFile = "/dev/null"
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        patchLines(oldContent),
		B:        patchLines(newContent),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  diffContextLines,
	})
}

// ancestorDirs returns every parent directory of p, nearest last.
func ancestorDirs(p string) []string {
	dirs := make([]string, 0)
	for dir := entities.ParentDir(p); dir != ""; dir = entities.ParentDir(dir) {
		dirs = append(dirs, dir)
	}
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}

// ensureParentDirs creates the directory documents above path that are missing.
func ensureParentDirs(
	ctx context.Context,
	files repositories.FileStore,
	repositoryID, branch, path, modifiedBy string,
) error {
	for _, dir := range ancestorDirs(path) {
		existing, err := files.GetByPath(ctx, repositoryID, branch, dir)
		if err == nil {
			if !existing.IsDirectory {
				return &entities.ValidationError{Field: "file path", Value: path, Reason: dir + " is a file"}
			}
			continue
		}
		if !entities.IsNotFound(err) {
			return err
		}

		if err = files.Upsert(ctx, &entities.File{
			RepositoryID:   repositoryID,
			Branch:         branch,
			Path:           dir,
			IsDirectory:    true,
			LastModifiedBy: modifiedBy,
			UpdatedAt:      time.Now().UTC(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// pruneEmptyDirs removes directory documents left without children, innermost first.
func pruneEmptyDirs(ctx context.Context, files repositories.FileStore, repositoryID, branch string) error {
	docs, err := files.ListByBranch(ctx, repositoryID, branch)
	if err != nil {
		return err
	}

	children := make(map[string]int)
	dirs := make([]string, 0)
	for _, doc := range docs {
		children[doc.Parent()]++
		if doc.IsDirectory {
			dirs = append(dirs, doc.Path)
		}
	}

	// deepest first so that emptying a directory can empty its parent
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], "/") > strings.Count(dirs[j], "/")
	})
	for _, dir := range dirs {
		if children[dir] > 0 {
			continue
		}
		if err = files.Delete(ctx, repositoryID, branch, dir); err != nil && !entities.IsNotFound(err) {
			return err
		}
		children[entities.ParentDir(dir)]--
	}
	return nil
}

// reconcileBranch rewrites the File documents of branch so they match the
// snapshot exactly. Directory documents are rebuilt from the file paths.
func reconcileBranch(
	ctx context.Context,
	files repositories.FileStore,
	repositoryID, branch string,
	snapshot map[string]string,
	modifiedBy string,
) (entities.ReconcileReport, error) {
	report := entities.ReconcileReport{Branch: branch}

	docs, err := files.ListByBranch(ctx, repositoryID, branch)
	if err != nil {
		return report, err
	}
	existing := make(map[string]entities.File, len(docs))
	for _, doc := range docs {
		existing[doc.Path] = doc
	}

	now := time.Now().UTC()
	paths := make([]string, 0, len(snapshot))
	for path := range snapshot {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		content := snapshot[path]
		doc, found := existing[path]
		switch {
		case !found:
			report.Added++
		case doc.IsDirectory || doc.Content != content:
			report.Updated++
		default:
			continue
		}

		if err = files.Upsert(ctx, &entities.File{
			RepositoryID:   repositoryID,
			Branch:         branch,
			Path:           path,
			Content:        content,
			LastModifiedBy: modifiedBy,
			UpdatedAt:      now,
		}); err != nil {
			return report, err
		}
	}

	for _, doc := range docs {
		if doc.IsDirectory {
			continue
		}
		if _, found := snapshot[doc.Path]; found {
			continue
		}
		if err = files.Delete(ctx, repositoryID, branch, doc.Path); err != nil && !entities.IsNotFound(err) {
			return report, err
		}
		report.Removed++
	}

	for _, path := range paths {
		if err = ensureParentDirs(ctx, files, repositoryID, branch, path, modifiedBy); err != nil {
			var validationErr *entities.ValidationError
			if !errors.As(err, &validationErr) {
				return report, err
			}
		}
	}
	if err = pruneEmptyDirs(ctx, files, repositoryID, branch); err != nil {
		return report, err
	}

	return report, nil
}

// forkBranchDocuments copies the File documents and head pointer of from onto a new branch.
func forkBranchDocuments(
	ctx context.Context,
	repos repositories.RepositoryStore,
	files repositories.FileStore,
	repo *entities.Repository,
	from, name string,
) error {
	docs, err := files.ListByBranch(ctx, repo.ID, from)
	if err != nil {
		return err
	}
	for i := range docs {
		doc := docs[i]
		doc.ID = ""
		doc.Branch = name
		if err = files.Upsert(ctx, &doc); err != nil {
			return err
		}
	}

	head := ""
	if fromHead, ok := repo.Branch(from); ok {
		head = fromHead.HeadCommit
	}
	if err = repos.UpdateBranchHead(ctx, repo.ID, name, head); err != nil {
		return err
	}
	repo.SetBranchHead(name, head)
	return nil
}
