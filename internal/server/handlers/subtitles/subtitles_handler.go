package subtitles

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/journal"
	"github.com/reelops/reelsweep/internal/reconcile"
	"github.com/reelops/reelsweep/internal/server/handlers/api"
)

type SubtitlesHandler struct {
	salvagedDir string
	migratedDir string
	targetDir   string
	journal     *journal.Store
}

func New(salvagedDir, migratedDir, targetDir string, store *journal.Store) *SubtitlesHandler {
	return &SubtitlesHandler{
		salvagedDir: salvagedDir,
		migratedDir: migratedDir,
		targetDir:   targetDir,
		journal:     store,
	}
}

type syncQuery struct {
	api.BatchQuery
	Source          string `form:"source,default=salvaged"`
	IncludeMetadata bool   `form:"include_metadata,default=false"`
}

// SyncToTarget moves subtitle files from the salvaged or migrated root into
// the same-named movie folders of the target root, at equivalent relative
// paths.
func (h *SubtitlesHandler) SyncToTarget(ctx *gin.Context) {
	var req syncQuery
	if !api.BindBatchQuery(ctx, &req, &req.BatchQuery) {
		return
	}

	var srcRoot string
	switch req.Source {
	case "salvaged":
		srcRoot = h.salvagedDir
	case "migrated":
		srcRoot = h.migratedDir
	default:
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeUnknownSource,
			fmt.Errorf("source must be salvaged or migrated, got %q", req.Source))
		return
	}
	started := time.Now()

	opts := reconcile.SubtitleSyncOptions{BatchOptions: req.Options()}
	if req.IncludeMetadata {
		opts.SubtitleExtensions = reconcile.SubtitleExtensions().Union(reconcile.MetadataExtensions())
	}

	report, err := reconcile.SyncSubtitles(srcRoot, h.targetDir, opts)
	api.RecordOperation(ctx, h.journal, "sync_subtitles_to_target", req.DryRun, report, started, err)
	if err != nil {
		api.AbortReconcileError(ctx, err)
		return
	}

	ctx.PureJSON(http.StatusOK, report)
}
