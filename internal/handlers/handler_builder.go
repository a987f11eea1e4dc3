package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/dto"
	"github.com/triplebook/triplebook/internal/middleware"
)

// builderHandler exposes the high-level transaction builders.
type builderHandler struct {
	builderService portssvc.TransactionBuilderSvcFacade
}

// registerBuilderRoutes registers the income/expense/transfer/split shortcuts.
func registerBuilderRoutes(rg *gin.RouterGroup, builderService portssvc.TransactionBuilderSvcFacade) {
	h := &builderHandler{builderService: builderService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/income", h.createIncome)
		transactions.POST("/expense", h.createExpense)
		transactions.POST("/transfer", h.createTransfer)
		transactions.POST("/split", h.createSplit)
	}
}

func (h *builderHandler) createIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.builderService.CreateIncome(c.Request.Context(), req)
	if err != nil {
		writeTransactionError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *builderHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.builderService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		writeTransactionError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *builderHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.builderService.CreateTransfer(c.Request.Context(), req)
	if err != nil {
		writeTransactionError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *builderHandler) createSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSplit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.builderService.CreateSplit(c.Request.Context(), req)
	if err != nil {
		writeTransactionError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
