package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/reconcile"
)

// AbortReconcileError maps a fatal engine error onto the API envelope.
// Per-item errors never reach here; they ride inside a 200 report.
func AbortReconcileError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, reconcile.ErrNotADirectory):
		AbortWithError(ctx, http.StatusBadRequest, CodeRootNotDir, err)
	case errors.Is(err, fs.ErrNotExist):
		AbortWithError(ctx, http.StatusNotFound, CodeRootNotFound, err)
	case errors.Is(err, doublestar.ErrBadPattern):
		AbortWithError(ctx, http.StatusBadRequest, CodeBadPattern, err)
	default:
		AbortWithError(ctx, http.StatusInternalServerError, CodeInternalError, err)
	}
}
