package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

const (
	placeholderFile    = "README.md"
	initialCommitMsg   = "Initial commit"
	branchRefPrefix    = "refs/heads/"
	authorStripChars   = "<>\r\n"
	placeholderContent = "# %s\n\nThis repository is managed by gitvault.\n"
)

// CLIGitRepository implements repositories.GitRepository by invoking the git
// binary, one short-lived process per step, in the project directory.
// It holds no repository state in memory.
type CLIGitRepository struct {
	store    *RepositoryStore
	executor CommandExecutor
	reader   *TreeReader
	settings *entities.Settings
}

var _ repositories.GitRepository = (*CLIGitRepository)(nil)

// NewCLIGitRepository creates the git operations layer.
func NewCLIGitRepository(
	settings *entities.Settings,
	store *RepositoryStore,
	executor CommandExecutor,
	reader *TreeReader,
) *CLIGitRepository {
	return &CLIGitRepository{
		store:    store,
		executor: executor,
		reader:   reader,
		settings: settings,
	}
}

// State reports the lifecycle state of the project repository.
func (r *CLIGitRepository) State(ctx context.Context, projectID string) entities.RepoState {
	if entities.ValidateProjectID(projectID) != nil || !r.store.Exists(projectID) {
		return entities.RepoUninitialized
	}
	if _, err := r.revParse(ctx, projectID, "HEAD"); err != nil {
		return entities.RepoInitialized
	}
	return entities.RepoReady
}

// InitRepo brings the project repository to the ready state. It is a no-op for
// a ready repository and resumes a half-initialized one.
func (r *CLIGitRepository) InitRepo(ctx context.Context, projectID string) error {
	if err := entities.ValidateProjectID(projectID); err != nil {
		return err
	}

	state := r.State(ctx, projectID)
	if state == entities.RepoReady {
		return nil
	}

	if state == entities.RepoUninitialized {
		if _, err := r.store.Create(projectID); err != nil {
			return err
		}
		if _, err := r.run(ctx, projectID, "init", "--quiet"); err != nil {
			return fmt.Errorf("failed to init repository for %q: %w", projectID, err)
		}
		if _, err := r.run(ctx, projectID, "symbolic-ref", "HEAD", branchRefPrefix+r.settings.DefaultBranch); err != nil {
			return fmt.Errorf("failed to set default branch for %q: %w", projectID, err)
		}
	}

	for _, kv := range [][2]string{
		{"user.name", r.settings.BotName},
		{"user.email", r.settings.BotEmail},
		{"commit.gpgsign", "false"},
	} {
		if _, err := r.run(ctx, projectID, "config", kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to configure %s for %q: %w", kv[0], projectID, err)
		}
	}

	if err := r.store.WriteFile(projectID, placeholderFile, fmt.Sprintf(placeholderContent, projectID)); err != nil {
		return err
	}
	if _, err := r.run(ctx, projectID, "add", "--", placeholderFile); err != nil {
		return fmt.Errorf("failed to stage placeholder for %q: %w", projectID, err)
	}
	if _, err := r.run(ctx, projectID, "commit", "-m", initialCommitMsg); err != nil {
		return fmt.Errorf("failed to create initial commit for %q: %w", projectID, err)
	}

	logger.Infof("Initialized repository for project %q at %s", projectID, r.store.Path(projectID))
	return nil
}

// CreateBranch creates name pointing at from. Creating an existing branch
// succeeds with Existed set and leaves its target untouched.
func (r *CLIGitRepository) CreateBranch(
	ctx context.Context,
	projectID, name, from string,
) (entities.BranchResult, error) {
	result := entities.BranchResult{Name: name, From: from}
	if err := entities.ValidateBranchName(name); err != nil {
		return result, err
	}
	if err := entities.ValidateBranchName(from); err != nil {
		return result, err
	}
	if err := r.InitRepo(ctx, projectID); err != nil {
		return result, err
	}

	fromHash, err := r.revParse(ctx, projectID, from)
	if err != nil {
		return result, entities.NewNotFoundError("ref", from)
	}

	if existing, existsErr := r.revParse(ctx, projectID, branchRefPrefix+name); existsErr == nil {
		result.Hash = existing
		result.Existed = true
		return result, nil
	}

	if _, err = r.run(ctx, projectID, "branch", name, fromHash); err != nil {
		return result, fmt.Errorf("failed to create branch %q from %q: %w", name, from, err)
	}

	result.Hash = fromHash
	logger.Infof("Created branch %q from %q (%s) in %q", name, from, shortHash(fromHash), projectID)
	return result, nil
}

// GetBranches lists local and remote branches. Any failure yields the default branch alone.
func (r *CLIGitRepository) GetBranches(ctx context.Context, projectID string) ([]string, error) {
	fallback := []string{r.settings.DefaultBranch}
	if err := r.InitRepo(ctx, projectID); err != nil {
		var validationErr *entities.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		logger.Warnf("Listing branches of %q fell back to defaults: %v", projectID, err)
		return fallback, nil
	}

	out, err := r.run(ctx, projectID, "branch", "-a", "--no-color")
	if err != nil {
		logger.Warnf("Listing branches of %q fell back to defaults: %v", projectID, err)
		return fallback, nil
	}

	branches := parseBranches(out)
	if len(branches) == 0 {
		return fallback, nil
	}
	return branches, nil
}

// GetDiff compares head with its merge base against base.
func (r *CLIGitRepository) GetDiff(ctx context.Context, projectID, base, head string) (entities.GitDiff, error) {
	diff := entities.GitDiff{Files: make([]entities.GitFileDiff, 0)}
	if err := validateRefs(base, head); err != nil {
		return diff, err
	}
	if err := r.readInit(ctx, projectID); err != nil {
		return diff, softError(err)
	}

	rng := base + "..." + head
	raw, err := r.run(ctx, projectID, "diff", "--no-color", "--no-renames", rng, "--")
	if err != nil {
		logger.Debugf("Diff %s in %q failed: %v", rng, projectID, err)
		return diff, nil
	}
	numstat, err := r.run(ctx, projectID, "diff", "--numstat", "--no-renames", rng, "--")
	if err != nil {
		logger.Debugf("Numstat %s in %q failed: %v", rng, projectID, err)
		return diff, nil
	}
	nameStatus, err := r.run(ctx, projectID, "diff", "--name-status", "--no-renames", rng, "--")
	if err != nil {
		logger.Debugf("Name-status %s in %q failed: %v", rng, projectID, err)
		return diff, nil
	}

	stats := parseNumstat(numstat)
	patches := splitPatches(raw)
	diff.Raw = raw
	for _, entry := range parseNameStatus(nameStatus) {
		stat := stats[entry.path]
		diff.Files = append(diff.Files, entities.GitFileDiff{
			Path:      entry.path,
			Status:    entry.status,
			Additions: stat.additions,
			Deletions: stat.deletions,
			Binary:    stat.binary,
			Patch:     patches[entry.path],
		})
	}
	return diff, nil
}

// GetCommitsBetween lists commits reachable from head and not from base, merges excluded.
func (r *CLIGitRepository) GetCommitsBetween(
	ctx context.Context,
	projectID, base, head string,
) ([]entities.GitCommit, error) {
	if err := validateRefs(base, head); err != nil {
		return nil, err
	}
	if err := r.readInit(ctx, projectID); err != nil {
		return []entities.GitCommit{}, softError(err)
	}

	out, err := r.run(ctx, projectID, "log", "--no-merges", logFormat, base+".."+head, "--")
	if err != nil {
		logger.Debugf("Listing commits %s..%s in %q failed: %v", base, head, projectID, err)
		return []entities.GitCommit{}, nil
	}
	return parseLog(out), nil
}

// Merge checks out base and merges head into it without fast-forwarding. The
// repository is left without an in-progress merge whatever the outcome.
func (r *CLIGitRepository) Merge(
	ctx context.Context,
	projectID, base, head, message string,
) (entities.MergeResult, error) {
	if err := validateRefs(base, head); err != nil {
		return entities.MergeResult{}, err
	}
	if strings.TrimSpace(message) == "" {
		message = fmt.Sprintf("Merge branch '%s' into %s", head, base)
	}

	// once started, a merge runs to completion so the cleanup below always happens
	ctx = context.WithoutCancel(ctx)
	if err := r.InitRepo(ctx, projectID); err != nil {
		return entities.MergeResult{}, err
	}

	if _, err := r.run(ctx, projectID, "checkout", "--quiet", base); err != nil {
		return entities.MergeResult{}, fmt.Errorf("failed to checkout %q: %w", base, err)
	}

	_, mergeErr := r.run(ctx, projectID, "merge", "--no-ff", "--no-edit", "-m", message, head)
	if mergeErr == nil {
		hash, err := r.revParse(ctx, projectID, "HEAD")
		if err != nil {
			return entities.MergeResult{}, fmt.Errorf("failed to resolve merge commit: %w", err)
		}
		logger.Infof("Merged %q into %q in %q (%s)", head, base, projectID, shortHash(hash))
		return entities.MergeResult{Success: true, Hash: hash}, nil
	}

	var cmdErr *entities.CommandError
	if errors.As(mergeErr, &cmdErr) && isConflict(cmdErr.Output()) {
		conflicts := make([]string, 0)
		if out, err := r.run(ctx, projectID, "diff", "--name-only", "--diff-filter=U"); err == nil {
			conflicts = splitLines(out)
		}
		r.abortMerge(ctx, projectID)

		logger.Warnf("Merging %q into %q in %q conflicts in %v", head, base, projectID, conflicts)
		return entities.MergeResult{Success: false, Conflicts: conflicts},
			&entities.ConflictError{Base: base, Head: head, Paths: conflicts}
	}

	r.abortMerge(ctx, projectID)
	return entities.MergeResult{}, fmt.Errorf("failed to merge %q into %q: %w", head, base, mergeErr)
}

// CommitFile writes one file on branch and commits it. An unchanged file is not an error.
func (r *CLIGitRepository) CommitFile(
	ctx context.Context,
	projectID, branch, path, content, message string,
	author entities.Author,
) (string, error) {
	return r.CommitChanges(ctx, projectID, branch, message, author, []entities.FileInput{
		{Path: path, Content: content},
	})
}

// UploadFile commits uploaded bytes as the content of path.
func (r *CLIGitRepository) UploadFile(
	ctx context.Context,
	projectID, branch, path string,
	data []byte,
	message string,
	author entities.Author,
) (string, error) {
	return r.CommitFile(ctx, projectID, branch, path, string(data), message, author)
}

// CommitChanges writes and deletes the given files on branch and commits them,
// returning the branch tip. "Nothing to commit" is a success. Only the given
// paths are staged, and a failure after the checkout puts them back to HEAD.
func (r *CLIGitRepository) CommitChanges(
	ctx context.Context,
	projectID, branch, message string,
	author entities.Author,
	changes []entities.FileInput,
) (string, error) {
	if err := entities.ValidateBranchName(branch); err != nil {
		return "", err
	}
	if err := entities.ValidateChangeSet(changes); err != nil {
		return "", err
	}
	if strings.TrimSpace(message) == "" {
		return "", &entities.ValidationError{Field: "commit message", Value: message, Reason: "must not be empty"}
	}

	ctx = context.WithoutCancel(ctx)
	if err := r.InitRepo(ctx, projectID); err != nil {
		return "", err
	}
	if err := r.checkoutOrCreate(ctx, projectID, branch); err != nil {
		return "", err
	}

	hash, err := r.applyChanges(ctx, projectID, branch, message, author, changes)
	if err != nil {
		r.discardChanges(ctx, projectID, changes)
		return "", err
	}
	return hash, nil
}

func (r *CLIGitRepository) applyChanges(
	ctx context.Context,
	projectID, branch, message string,
	author entities.Author,
	changes []entities.FileInput,
) (string, error) {
	written := make([]string, 0, len(changes))
	deleted := make([]string, 0)
	for _, change := range changes {
		if change.IsDelete {
			if err := r.store.RemoveFile(projectID, change.Path); err != nil {
				return "", err
			}
			deleted = append(deleted, change.Path)
			continue
		}
		if err := r.store.WriteFile(projectID, change.Path, change.Content); err != nil {
			return "", err
		}
		written = append(written, change.Path)
	}

	if len(written) > 0 {
		if _, err := r.run(ctx, projectID, append([]string{"add", "--"}, written...)...); err != nil {
			return "", fmt.Errorf("failed to stage changes on %q: %w", branch, err)
		}
	}
	if len(deleted) > 0 {
		args := append([]string{"rm", "--cached", "--quiet", "--ignore-unmatch", "--"}, deleted...)
		if _, err := r.run(ctx, projectID, args...); err != nil {
			return "", fmt.Errorf("failed to stage deletions on %q: %w", branch, err)
		}
	}
	return r.commit(ctx, projectID, message, author)
}

// discardChanges resets the index and working tree to HEAD and removes the
// untracked files and directories a failed commit left behind.
func (r *CLIGitRepository) discardChanges(ctx context.Context, projectID string, changes []entities.FileInput) {
	if _, err := r.run(ctx, projectID, "reset", "--hard", "--quiet", "HEAD"); err != nil {
		logger.Errorf("Failed to reset working tree of %q: %v", projectID, err)
	}

	args := []string{"clean", "-fd", "--quiet", "--"}
	for _, change := range changes {
		args = append(args, change.Path)
		// with the top directory a nested write may have created
		if top, _, nested := strings.Cut(change.Path, "/"); nested {
			args = append(args, top)
		}
	}
	if _, err := r.run(ctx, projectID, args...); err != nil {
		logger.Errorf("Failed to clean working tree of %q: %v", projectID, err)
	}
}

// GetFileContent reads path at the tip of branch.
func (r *CLIGitRepository) GetFileContent(ctx context.Context, projectID, branch, path string) (string, error) {
	return r.ShowFile(ctx, projectID, branch, path)
}

// ShowFile reads path at revision from the object database; "" when it cannot be read.
func (r *CLIGitRepository) ShowFile(ctx context.Context, projectID, revision, path string) (string, error) {
	if err := entities.ValidateBranchName(revision); err != nil {
		return "", err
	}
	if err := entities.ValidateFilePath(path); err != nil {
		return "", err
	}
	if err := r.readInit(ctx, projectID); err != nil {
		return "", softError(err)
	}

	out, err := r.run(ctx, projectID, "show", revision+":"+path)
	if err != nil {
		logger.Debugf("Reading %s:%s in %q failed: %v", revision, path, projectID, err)
		return "", nil
	}
	return out, nil
}

// GetCommitHistory returns the newest commits of branch.
func (r *CLIGitRepository) GetCommitHistory(
	ctx context.Context,
	projectID, branch string,
	limit int,
) ([]entities.GitCommit, error) {
	return r.GetLog(ctx, projectID, branch, "", limit)
}

// GetLog returns the newest commits of revision, restricted to path when given.
func (r *CLIGitRepository) GetLog(
	ctx context.Context,
	projectID, revision, path string,
	limit int,
) ([]entities.GitCommit, error) {
	if err := entities.ValidateBranchName(revision); err != nil {
		return nil, err
	}
	if path != "" {
		if err := entities.ValidateFilePath(path); err != nil {
			return nil, err
		}
	}
	if err := r.readInit(ctx, projectID); err != nil {
		return []entities.GitCommit{}, softError(err)
	}

	args := []string{"log", "-n", strconv.Itoa(r.settings.EffectiveHistoryLimit(limit)), logFormat, revision, "--"}
	if path != "" {
		args = append(args, path)
	}

	out, err := r.run(ctx, projectID, args...)
	if err != nil {
		logger.Debugf("Log of %q in %q failed: %v", revision, projectID, err)
		return []entities.GitCommit{}, nil
	}
	return parseLog(out), nil
}

// GetLatestCommit returns the tip commit of branch or nil.
func (r *CLIGitRepository) GetLatestCommit(
	ctx context.Context,
	projectID, branch string,
) (*entities.GitCommit, error) {
	commits, err := r.GetLog(ctx, projectID, branch, "", 1)
	if err != nil || len(commits) == 0 {
		return nil, err
	}
	return &commits[0], nil
}

// ListFiles lists the entries directly inside dir ("" for the root) at the tip of branch.
func (r *CLIGitRepository) ListFiles(
	ctx context.Context,
	projectID, branch, dir string,
) ([]entities.TreeEntry, error) {
	if err := entities.ValidateBranchName(branch); err != nil {
		return nil, err
	}
	if err := entities.ValidateDirectory(dir); err != nil {
		return nil, err
	}
	if err := r.readInit(ctx, projectID); err != nil {
		return []entities.TreeEntry{}, softError(err)
	}

	args := []string{"ls-tree", branch}
	if dir = strings.TrimSuffix(dir, "/"); dir != "" {
		args = append(args, "--", dir+"/")
	}

	out, err := r.run(ctx, projectID, args...)
	if err != nil {
		logger.Debugf("Listing %q on %q in %q failed: %v", dir, branch, projectID, err)
		return []entities.TreeEntry{}, nil
	}
	return parseTree(out), nil
}

// GetRepoStats counts commits over all refs, distinct author names and the
// files tracked on the default branch.
func (r *CLIGitRepository) GetRepoStats(ctx context.Context, projectID string) (entities.RepoStats, error) {
	var stats entities.RepoStats
	if err := r.readInit(ctx, projectID); err != nil {
		return stats, softError(err)
	}

	if out, err := r.run(ctx, projectID, "rev-list", "--count", "--all"); err == nil {
		stats.Commits, _ = strconv.Atoi(strings.TrimSpace(out))
	}

	if out, err := r.run(ctx, projectID, "log", "--all", "--format=%an"); err == nil {
		authors := make(map[string]bool)
		for _, name := range splitLines(out) {
			authors[name] = true
		}
		stats.Contributors = len(authors)
	}

	if out, err := r.run(ctx, projectID, "ls-tree", "-r", "--name-only", r.settings.DefaultBranch); err == nil {
		stats.Files = len(splitLines(out))
	}

	return stats, nil
}

// SnapshotTree returns every text file at the tip of branch. Unlike the other
// reads it surfaces failures, so a broken read is never mistaken for an empty tree.
func (r *CLIGitRepository) SnapshotTree(ctx context.Context, projectID, branch string) (map[string]string, error) {
	if err := entities.ValidateBranchName(branch); err != nil {
		return nil, err
	}
	if err := r.InitRepo(ctx, projectID); err != nil {
		return nil, err
	}
	return r.reader.Snapshot(r.store.Path(projectID), branch)
}

func (r *CLIGitRepository) run(ctx context.Context, projectID string, args ...string) (string, error) {
	result, err := r.executor.Execute(ctx, r.store.Path(projectID), args...)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}

func (r *CLIGitRepository) revParse(ctx context.Context, projectID, ref string) (string, error) {
	out, err := r.run(ctx, projectID, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// readInit initializes the repository for a read; callers degrade any
// non-validation failure to their empty result.
func (r *CLIGitRepository) readInit(ctx context.Context, projectID string) error {
	if err := r.InitRepo(ctx, projectID); err != nil {
		logger.Debugf("Repository %q unavailable for read: %v", projectID, err)
		return err
	}
	return nil
}

func (r *CLIGitRepository) checkoutOrCreate(ctx context.Context, projectID, branch string) error {
	if _, err := r.revParse(ctx, projectID, branchRefPrefix+branch); err == nil {
		if _, err = r.run(ctx, projectID, "checkout", "--quiet", branch); err != nil {
			return fmt.Errorf("failed to checkout %q: %w", branch, err)
		}
		return nil
	}

	if _, err := r.run(ctx, projectID, "checkout", "--quiet", "-b", branch, r.settings.DefaultBranch); err != nil {
		return fmt.Errorf("failed to create branch %q: %w", branch, err)
	}
	logger.Infof("Created branch %q from %q in %q", branch, r.settings.DefaultBranch, projectID)
	return nil
}

func (r *CLIGitRepository) commit(
	ctx context.Context,
	projectID, message string,
	author entities.Author,
) (string, error) {
	args := []string{"commit", "-m", message}
	if !author.IsZero() {
		args = append(args, "--author="+r.formatAuthor(author))
	}

	if _, err := r.run(ctx, projectID, args...); err != nil {
		var cmdErr *entities.CommandError
		if !errors.As(err, &cmdErr) || !isNothingToCommit(cmdErr.Output()) {
			return "", fmt.Errorf("failed to commit: %w", err)
		}
		logger.Debugf("Nothing to commit in %q", projectID)
	}

	hash, err := r.revParse(ctx, projectID, "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return hash, nil
}

func (r *CLIGitRepository) abortMerge(ctx context.Context, projectID string) {
	if !r.store.MergeInProgress(projectID) {
		return
	}
	if _, err := r.run(ctx, projectID, "merge", "--abort"); err == nil && !r.store.MergeInProgress(projectID) {
		return
	}
	if _, err := r.run(ctx, projectID, "reset", "--hard", "--quiet", "HEAD"); err != nil {
		logger.Errorf("Failed to clean up merge in %q: %v", projectID, err)
	}
}

func (r *CLIGitRepository) formatAuthor(author entities.Author) string {
	name := stripChars(author.Name)
	if name == "" {
		name = r.settings.BotName
	}
	email := stripChars(author.Email)
	if email == "" {
		email = r.settings.BotEmail
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

func stripChars(value string) string {
	return strings.TrimSpace(strings.Map(func(c rune) rune {
		if strings.ContainsRune(authorStripChars, c) {
			return -1
		}
		return c
	}, value))
}

func validateRefs(refs ...string) error {
	for _, ref := range refs {
		if err := entities.ValidateBranchName(ref); err != nil {
			return err
		}
	}
	return nil
}

// softError keeps validation failures and drops everything else, which is how
// read operations degrade to their empty results.
func softError(err error) error {
	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}
	return nil
}

func shortHash(hash string) string {
	const short = 7
	if len(hash) > short {
		return hash[:short]
	}
	return hash
}
