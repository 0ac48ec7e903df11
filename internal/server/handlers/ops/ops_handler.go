package ops

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/journal"
	"github.com/reelops/reelsweep/internal/server/handlers/api"
)

type OpsHandler struct {
	journal *journal.Store
}

func New(store *journal.Store) *OpsHandler {
	return &OpsHandler{journal: store}
}

type listQuery struct {
	Limit int `form:"limit,default=50"`
}

// List returns the most recent operation runs, newest first.
func (h *OpsHandler) List(ctx *gin.Context) {
	var req listQuery
	if err := ctx.ShouldBindQuery(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}
	if req.Limit < 0 || req.Limit > 1000 {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("limit must be between 0 and 1000, got %d", req.Limit))
		return
	}

	entries, err := h.journal.List(ctx.Request.Context(), req.Limit)
	if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeJournalFailed, err)
		return
	}

	ctx.PureJSON(http.StatusOK, gin.H{
		"operations": entries,
		"count":      len(entries),
	})
}
