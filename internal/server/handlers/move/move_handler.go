package move

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/journal"
	"github.com/reelops/reelsweep/internal/reconcile"
	"github.com/reelops/reelsweep/internal/server/handlers/api"
)

type MoveHandler struct {
	cleanupDir       string
	targetDir        string
	unwantedPatterns []string
	journal          *journal.Store
}

func New(cleanupDir, targetDir string, unwantedPatterns []string, store *journal.Store) *MoveHandler {
	return &MoveHandler{
		cleanupDir:       cleanupDir,
		targetDir:        targetDir,
		unwantedPatterns: unwantedPatterns,
		journal:          store,
	}
}

type nonDuplicatesQuery struct {
	api.BatchQuery
	SkipCleanup bool `form:"skip_cleanup,default=false"`
}

type nonDuplicatesResponse struct {
	Cleanup *reconcile.UnwantedReport `json:"cleanup,omitempty"`
	Move    *reconcile.MoveReport     `json:"move"`
}

// NonDuplicates sweeps unwanted files out of the cleanup root (unless
// skip_cleanup is set) and then moves its non-duplicate subdirectories into
// the target root.
func (h *MoveHandler) NonDuplicates(ctx *gin.Context) {
	var req nonDuplicatesQuery
	if !api.BindBatchQuery(ctx, &req, &req.BatchQuery) {
		return
	}
	started := time.Now()

	var resp nonDuplicatesResponse
	if !req.SkipCleanup {
		cleanup, err := reconcile.CleanUnwantedFiles(h.cleanupDir, h.unwantedPatterns, req.DryRun)
		if err != nil {
			api.RecordOperation(ctx, h.journal, "move_non_duplicates", req.DryRun, nil, started, err)
			api.AbortReconcileError(ctx, err)
			return
		}
		resp.Cleanup = cleanup
	}

	report, err := reconcile.MoveNonDuplicates(h.cleanupDir, h.targetDir, req.Options())
	api.RecordOperation(ctx, h.journal, "move_non_duplicates", req.DryRun, report, started, err)
	if err != nil {
		api.AbortReconcileError(ctx, err)
		return
	}
	resp.Move = report

	ctx.PureJSON(http.StatusOK, resp)
}
