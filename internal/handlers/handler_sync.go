package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/dto"
	"github.com/triplebook/triplebook/internal/middleware"
)

// syncHandler exposes the sync engine's trigger and status endpoints.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

// registerSyncRoutes registers routes related to synchronization.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade) {
	h := &syncHandler{syncService: syncService}

	sync := rg.Group("/sync")
	{
		sync.POST("", h.triggerSync)
		sync.GET("/status", h.getStatus)
		sync.PUT("/online", h.setOnline)
	}
}

// triggerSync runs one cycle, or coalesces into the running one. Transport
// failures surface through the returned status, not as an HTTP error.
func (h *syncHandler) triggerSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status, err := h.syncService.Sync(c.Request.Context())
	if err != nil {
		logger.Error("Sync cycle failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync failed", "status": dto.ToSyncStatusResponse(status)})
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(status))
}

func (h *syncHandler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(h.syncService.Status()))
}

// setOnline lets the platform's connectivity detector report reachability.
func (h *syncHandler) setOnline(c *gin.Context) {
	var req struct {
		Online *bool `json:"online" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.syncService.SetOnline(*req.Online)
	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(h.syncService.Status()))
}
