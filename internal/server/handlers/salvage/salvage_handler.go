package salvage

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/journal"
	"github.com/reelops/reelsweep/internal/reconcile"
	"github.com/reelops/reelsweep/internal/server/handlers/api"
)

type SalvageHandler struct {
	recycledDir string
	salvagedDir string
	journal     *journal.Store
}

func New(recycledDir, salvagedDir string, store *journal.Store) *SalvageHandler {
	return &SalvageHandler{
		recycledDir: recycledDir,
		salvagedDir: salvagedDir,
		journal:     store,
	}
}

type salvageQuery struct {
	api.BatchQuery
	IncludeMetadata bool `form:"include_metadata,default=false"`
}

// SubtitleFolders copies subtitle files out of recycled movie folders into
// the salvaged root. Originals are never touched.
func (h *SalvageHandler) SubtitleFolders(ctx *gin.Context) {
	var req salvageQuery
	if !api.BindBatchQuery(ctx, &req, &req.BatchQuery) {
		return
	}
	started := time.Now()

	opts := reconcile.SalvageOptions{BatchOptions: req.Options()}
	if req.IncludeMetadata {
		opts.SubtitleExtensions = reconcile.SubtitleExtensions().Union(reconcile.MetadataExtensions())
	}

	report, err := reconcile.SalvageSubtitleFolders(h.recycledDir, h.salvagedDir, opts)
	api.RecordOperation(ctx, h.journal, "salvage_subtitle_folders", req.DryRun, report, started, err)
	if err != nil {
		api.AbortReconcileError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, report)
}
