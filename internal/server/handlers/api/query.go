package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/reconcile"
)

// BatchQuery is the parameter pair shared by every batch-limited operation.
// dry_run defaults to true so an unparameterized call never mutates anything.
type BatchQuery struct {
	DryRun    bool `form:"dry_run,default=true"`
	BatchSize int  `form:"batch_size,default=0"`
}

func (q *BatchQuery) Options() reconcile.BatchOptions {
	return reconcile.BatchOptions{DryRun: q.DryRun, BatchSize: q.BatchSize}
}

// BindBatchQuery binds dry_run/batch_size (plus any extra fields on dst,
// which must embed BatchQuery) and rejects a negative batch_size. Returns
// false after writing the error response.
func BindBatchQuery(ctx *gin.Context, dst any, q *BatchQuery) bool {
	if err := ctx.ShouldBindQuery(dst); err != nil {
		AbortWithError(ctx, http.StatusBadRequest, CodeInvalidRequest, fmt.Errorf("bind query: %w", err))
		return false
	}
	if q.BatchSize < 0 {
		AbortWithError(ctx, http.StatusBadRequest, CodeInvalidRequest,
			fmt.Errorf("batch_size must be >= 0, got %d", q.BatchSize))
		return false
	}
	return true
}
