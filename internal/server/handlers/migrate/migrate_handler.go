package migrate

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/journal"
	"github.com/reelops/reelsweep/internal/reconcile"
	"github.com/reelops/reelsweep/internal/server/handlers/api"
)

type MigrateHandler struct {
	targetDir   string
	migratedDir string
	journal     *journal.Store
}

func New(targetDir, migratedDir string, store *journal.Store) *MigrateHandler {
	return &MigrateHandler{
		targetDir:   targetDir,
		migratedDir: migratedDir,
		journal:     store,
	}
}

type migrateQuery struct {
	api.BatchQuery
	DeleteSourceIfMatch            bool `form:"delete_source_if_match,default=false"`
	MergeMissingFiles              bool `form:"merge_missing_files,default=false"`
	DeleteSourceAfterMerge         bool `form:"delete_source_after_merge,default=false"`
	DeleteSourceWhenNothingToMerge bool `form:"delete_source_when_nothing_to_merge,default=false"`
}

// NonMovieFolders relocates first-level folders of the target root that hold
// files but no movie file into the migrated root, applying the requested
// conflict policy for names that already exist there.
func (h *MigrateHandler) NonMovieFolders(ctx *gin.Context) {
	var req migrateQuery
	if !api.BindBatchQuery(ctx, &req, &req.BatchQuery) {
		return
	}
	started := time.Now()

	opts := reconcile.MigrateOptions{
		BatchOptions: req.Options(),
		Policy: reconcile.MigratePolicy{
			DeleteSourceIfMatch:            req.DeleteSourceIfMatch,
			MergeMissingFiles:              req.MergeMissingFiles,
			DeleteSourceAfterMerge:         req.DeleteSourceAfterMerge,
			DeleteSourceWhenNothingToMerge: req.DeleteSourceWhenNothingToMerge,
		},
	}

	report, err := reconcile.MigrateNonMovieFolders(h.targetDir, h.migratedDir, opts)
	api.RecordOperation(ctx, h.journal, "migrate_non_movie_folders", req.DryRun, report, started, err)
	if err != nil {
		api.AbortReconcileError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, report)
}
