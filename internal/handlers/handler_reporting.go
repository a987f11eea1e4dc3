package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/triplebook/triplebook/internal/apperrors"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/middleware"
)

// reportingHandler exposes balance history and net worth rollups.
type reportingHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerReportingRoutes registers the reporting endpoints.
func registerReportingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, defaultDisplayCurrency string) {
	h := &reportingHandler{ledgerService: ledgerService}

	reports := rg.Group("/reports")
	{
		reports.GET("/accounts/:id/history", h.getBalanceHistory)
		reports.GET("/net-worth", func(c *gin.Context) { h.getNetWorth(c, defaultDisplayCurrency) })
	}
}

func (h *reportingHandler) getBalanceHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	start, ok := parseRequiredDate(c, "start")
	if !ok {
		return
	}
	end, ok := parseRequiredDate(c, "end")
	if !ok {
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not precede start"})
		return
	}

	resp, err := h.ledgerService.GetAccountBalanceHistory(c.Request.Context(), accountID, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to compute balance history", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance history"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) getNetWorth(c *gin.Context, defaultDisplayCurrency string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	displayCurrency := c.Query("currency")
	if displayCurrency == "" {
		displayCurrency = defaultDisplayCurrency
	}

	asOf := time.Now().UTC()
	if asOfPtr, ok := parseOptionalDate(c, "asOf"); !ok {
		return
	} else if asOfPtr != nil {
		asOf = *asOfPtr
	}

	resp, err := h.ledgerService.CalculateNetWorth(c.Request.Context(), displayCurrency, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute net worth", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute net worth"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
