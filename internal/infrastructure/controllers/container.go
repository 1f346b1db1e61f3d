package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	for _, constructor := range []any{
		NewRepositoryCreateController,
		NewRepositoryGetController,
		NewReconcileController,
		NewFilesListController,
		NewFilesShowController,
		NewFilesSearchController,
		NewCommitController,
		NewUploadController,
		NewDiffController,
		NewBranchListController,
		NewBranchCreateController,
		NewBranchMergeController,
		NewBranchCompareController,
		NewLogController,
		NewShowController,
		NewStatsController,
		NewAnalyticsController,
		NewCommentAddController,
		NewCommentListController,
		NewCommentEditController,
		NewCommentRemoveController,
		NewControllers,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// ControllerSet receives every controller from the container.
type ControllerSet struct {
	dig.In

	RepositoryCreate *RepositoryCreateController
	RepositoryGet    *RepositoryGetController
	Reconcile        *ReconcileController
	FilesList        *FilesListController
	FilesShow        *FilesShowController
	FilesSearch      *FilesSearchController
	Commit           *CommitController
	Upload           *UploadController
	Diff             *DiffController
	BranchList       *BranchListController
	BranchCreate     *BranchCreateController
	BranchMerge      *BranchMergeController
	BranchCompare    *BranchCompareController
	Log              *LogController
	Show             *ShowController
	Stats            *StatsController
	Analytics        *AnalyticsController
	CommentAdd       *CommentAddController
	CommentList      *CommentListController
	CommentEdit      *CommentEditController
	CommentRemove    *CommentRemoveController
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(set ControllerSet) *[]entities.Controller {
	return &[]entities.Controller{
		set.RepositoryCreate,
		set.RepositoryGet,
		set.FilesList,
		set.FilesShow,
		set.FilesSearch,
		set.Commit,
		set.Upload,
		set.Diff,
		set.BranchList,
		set.BranchCreate,
		set.BranchMerge,
		set.BranchCompare,
		set.Log,
		set.Show,
		set.Stats,
		set.Analytics,
		set.Reconcile,
		set.CommentAdd,
		set.CommentList,
		set.CommentEdit,
		set.CommentRemove,
	}
}
