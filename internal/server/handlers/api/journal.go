package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/journal"
)

// RecordOperation journals an operation run best-effort. The journal is a
// collaborator the operations must not depend on, so a nil store or a failed
// write only logs a warning.
func RecordOperation(ctx *gin.Context, store *journal.Store, op string, dryRun bool, report any, started time.Time, opErr error) {
	if store == nil {
		return
	}
	if _, err := store.Record(ctx.Request.Context(), op, dryRun, report, started, opErr); err != nil {
		slog.Warn("journal record failed", "operation", op, "error", err)
	}
}
