package commands

import (
	"context"
	"crypto/sha1" //nolint:gosec // identifier, not a security primitive
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// CommitInput is a change set to record on a branch.
type CommitInput struct {
	RepositoryID string
	Branch       string
	Message      string
	Author       entities.Author
	Files        []entities.FileInput
}

// Commit is the interface for the commit synchronizer.
type Commit interface {
	Execute(ctx context.Context, input CommitInput) (*entities.Commit, error)
}

// CommitCommand applies a change set to the document mirror and to git.
//
// The mirror is authoritative: File documents and the Commit document are
// written whether or not the git step succeeds. A failing git step is logged
// and recorded on the Commit as MirrorError.
type CommitCommand struct {
	settings *entities.Settings
	repos    repositories.RepositoryStore
	commits  repositories.CommitStore
	files    repositories.FileStore
	git      repositories.GitRepository
	notifier repositories.NotifierRepository
}

// NewCommitCommand creates a new CommitCommand.
func NewCommitCommand(
	settings *entities.Settings,
	repos repositories.RepositoryStore,
	commits repositories.CommitStore,
	files repositories.FileStore,
	git repositories.GitRepository,
	notifier repositories.NotifierRepository,
) *CommitCommand {
	return &CommitCommand{
		settings: settings,
		repos:    repos,
		commits:  commits,
		files:    files,
		git:      git,
		notifier: notifier,
	}
}

// Execute records the change set and returns the Commit document.
func (it *CommitCommand) Execute(ctx context.Context, input CommitInput) (*entities.Commit, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return nil, err
	}
	branch, err := branchOrDefault(repo, input.Branch)
	if err != nil {
		return nil, err
	}
	if err = validateChangeSet(input); err != nil {
		return nil, err
	}

	// every check reads the branch as it will look once forked, before any write
	source := branch
	_, known := repo.Branch(branch)
	if !known {
		source = repo.DefaultBranch
	}
	if err = it.checkParents(ctx, repo.ID, source, input.Files); err != nil {
		return nil, err
	}
	changes, err := it.classify(ctx, repo.ID, source, input.Files)
	if err != nil {
		return nil, err
	}

	// nothing below is abandoned halfway because the caller went away
	ctx = context.WithoutCancel(ctx)
	authorName := it.authorName(input.Author)

	// a branch first seen here starts from the default branch, as it does in git
	if !known {
		if err = forkBranchDocuments(ctx, it.repos, it.files, repo, repo.DefaultBranch, branch); err != nil {
			return nil, fmt.Errorf("failed to start branch %q: %w", branch, err)
		}
	}
	if err = it.applyToMirror(ctx, repo.ID, branch, authorName, changes); err != nil {
		return nil, err
	}

	commit := &entities.Commit{
		ID:           uuid.NewString(),
		RepositoryID: repo.ID,
		Author:       authorName,
		Message:      input.Message,
		Branch:       branch,
		FilesChanged: changes,
		CreatedAt:    time.Now().UTC(),
	}
	for _, change := range changes {
		stats := lineStats(change.OldContent, change.NewContent)
		commit.Stats.Additions += stats.Additions
		commit.Stats.Deletions += stats.Deletions
	}

	gitHash, gitErr := it.git.CommitChanges(ctx, repo.ProjectID, branch, input.Message, input.Author, input.Files)
	if gitErr != nil {
		logger.Warnf("Git mirror of commit on %q in %q failed, documents kept: %v", branch, repo.ProjectID, gitErr)
		commit.MirrorError = gitErr.Error()
	} else {
		commit.Mirrored = true
		commit.GitHash = gitHash
	}

	commit.Hash = localHash(commit)
	if err = it.commits.Create(ctx, commit); err != nil {
		return nil, fmt.Errorf("failed to store commit: %w", err)
	}
	if err = it.repos.UpdateBranchHead(ctx, repo.ID, branch, commit.Hash); err != nil {
		return nil, fmt.Errorf("failed to move head of %q: %w", branch, err)
	}

	logger.Infof("Committed %d file(s) to %q in %q (%s)", len(changes), branch, repo.ProjectID, commit.Hash[:7])
	it.notifier.Publish(ctx, entities.Event{
		Type:         entities.EventCommitCreated,
		RepositoryID: repo.ID,
		ProjectID:    repo.ProjectID,
		Branch:       branch,
		Actor:        authorName,
		Subject:      commit.Hash,
		Message:      input.Message,
		OccurredAt:   commit.CreatedAt,
	})

	return commit, nil
}

// classify compares every input with the current File document.
func (it *CommitCommand) classify(
	ctx context.Context,
	repositoryID, branch string,
	inputs []entities.FileInput,
) ([]entities.FileChange, error) {
	changes := make([]entities.FileChange, 0, len(inputs))
	for _, input := range inputs {
		existing, err := it.files.GetByPath(ctx, repositoryID, branch, input.Path)
		if err != nil && !entities.IsNotFound(err) {
			return nil, err
		}
		if existing != nil && existing.IsDirectory {
			return nil, &entities.ValidationError{Field: "file path", Value: input.Path, Reason: "is a directory"}
		}

		change := entities.FileChange{Path: input.Path}
		if existing != nil {
			change.OldContent = existing.Content
		}
		switch {
		case input.IsDelete:
			change.ChangeType = entities.ChangeDelete
		case existing == nil:
			change.ChangeType = entities.ChangeAdd
			change.NewContent = input.Content
		default:
			change.ChangeType = entities.ChangeModify
			change.NewContent = input.Content
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// checkParents rejects a write below an existing file document.
func (it *CommitCommand) checkParents(
	ctx context.Context,
	repositoryID, branch string,
	inputs []entities.FileInput,
) error {
	for _, input := range inputs {
		if input.IsDelete {
			continue
		}
		for _, dir := range ancestorDirs(input.Path) {
			existing, err := it.files.GetByPath(ctx, repositoryID, branch, dir)
			if entities.IsNotFound(err) {
				continue
			}
			if err != nil {
				return err
			}
			if !existing.IsDirectory {
				return &entities.ValidationError{Field: "file path", Value: input.Path, Reason: dir + " is a file"}
			}
		}
	}
	return nil
}

func (it *CommitCommand) applyToMirror(
	ctx context.Context,
	repositoryID, branch, authorName string,
	changes []entities.FileChange,
) error {
	deleted := false
	for _, change := range changes {
		if change.ChangeType == entities.ChangeDelete {
			err := it.files.Delete(ctx, repositoryID, branch, change.Path)
			if err != nil && !entities.IsNotFound(err) {
				return fmt.Errorf("failed to delete document %q: %w", change.Path, err)
			}
			deleted = true
			continue
		}

		if err := ensureParentDirs(ctx, it.files, repositoryID, branch, change.Path, authorName); err != nil {
			return err
		}
		if err := it.files.Upsert(ctx, &entities.File{
			RepositoryID:   repositoryID,
			Branch:         branch,
			Path:           change.Path,
			Content:        change.NewContent,
			LastModifiedBy: authorName,
			UpdatedAt:      time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("failed to store document %q: %w", change.Path, err)
		}
	}

	if deleted {
		return pruneEmptyDirs(ctx, it.files, repositoryID, branch)
	}
	return nil
}

func (it *CommitCommand) authorName(author entities.Author) string {
	if name := strings.TrimSpace(author.Name); name != "" {
		return name
	}
	return it.settings.BotName
}

func validateChangeSet(input CommitInput) error {
	if strings.TrimSpace(input.Message) == "" {
		return &entities.ValidationError{Field: "commit message", Value: input.Message, Reason: "must not be empty"}
	}
	if len(input.Files) == 0 {
		return &entities.ValidationError{Field: "files", Value: "", Reason: "at least one file is required"}
	}
	return entities.ValidateChangeSet(input.Files)
}

// localHash derives the 40-hex document hash of a commit. It is unrelated to
// the git object id, which is kept in GitHash.
func localHash(commit *entities.Commit) string {
	h := sha1.New() //nolint:gosec // identifier, not a security primitive
	for _, part := range []string{
		uuid.NewString(),
		commit.RepositoryID,
		commit.Branch,
		commit.Author,
		commit.Message,
		commit.CreatedAt.Format(time.RFC3339Nano),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
