package cleanup

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/journal"
	"github.com/reelops/reelsweep/internal/reconcile"
	"github.com/reelops/reelsweep/internal/server/handlers/api"
)

type CleanupHandler struct {
	cleanupDir       string
	unwantedPatterns []string
	journal          *journal.Store
}

func New(cleanupDir string, unwantedPatterns []string, store *journal.Store) *CleanupHandler {
	return &CleanupHandler{
		cleanupDir:       cleanupDir,
		unwantedPatterns: unwantedPatterns,
		journal:          store,
	}
}

// EmptyFolders reclaims leaf-empty directories under the cleanup root,
// deepest first.
func (h *CleanupHandler) EmptyFolders(ctx *gin.Context) {
	var req api.BatchQuery
	if !api.BindBatchQuery(ctx, &req, &req) {
		return
	}
	started := time.Now()

	report, err := reconcile.RemoveEmptyDirs(h.cleanupDir, req.Options())
	api.RecordOperation(ctx, h.journal, "cleanup_empty_folders", req.DryRun, report, started, err)
	if err != nil {
		api.AbortReconcileError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, report)
}

type unwantedQuery struct {
	DryRun bool `form:"dry_run,default=true"`
}

// UnwantedFiles deletes files under the cleanup root matching the configured
// glob patterns.
func (h *CleanupHandler) UnwantedFiles(ctx *gin.Context) {
	var req unwantedQuery
	if err := ctx.ShouldBindQuery(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}
	started := time.Now()

	report, err := reconcile.CleanUnwantedFiles(h.cleanupDir, h.unwantedPatterns, req.DryRun)
	api.RecordOperation(ctx, h.journal, "cleanup_unwanted_files", req.DryRun, report, started, err)
	if err != nil {
		api.AbortReconcileError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, report)
}

// ScanUnwantedFiles reports matches without deleting anything.
func (h *CleanupHandler) ScanUnwantedFiles(ctx *gin.Context) {
	started := time.Now()

	report, err := reconcile.CleanUnwantedFiles(h.cleanupDir, h.unwantedPatterns, true)
	api.RecordOperation(ctx, h.journal, "scan_unwanted_files", true, report, started, err)
	if err != nil {
		api.AbortReconcileError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, report)
}
