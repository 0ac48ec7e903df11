package compare

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/journal"
	"github.com/reelops/reelsweep/internal/reconcile"
	"github.com/reelops/reelsweep/internal/server/handlers/api"
)

type CompareHandler struct {
	cleanupDir string
	targetDir  string
	journal    *journal.Store
}

func New(cleanupDir, targetDir string, store *journal.Store) *CompareHandler {
	return &CompareHandler{
		cleanupDir: cleanupDir,
		targetDir:  targetDir,
		journal:    store,
	}
}

// Directories compares the first-level subdirectory names of the cleanup and
// target roots. Read-only.
func (h *CompareHandler) Directories(ctx *gin.Context) {
	started := time.Now()

	res, err := reconcile.CompareDirs(h.cleanupDir, h.targetDir)
	api.RecordOperation(ctx, h.journal, "compare_directories", false, res, started, err)
	if err != nil {
		api.AbortReconcileError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, res)
}
