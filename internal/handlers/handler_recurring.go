package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/triplebook/triplebook/internal/apperrors"
	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/dto"
	"github.com/triplebook/triplebook/internal/middleware"
)

// recurringHandler handles HTTP requests for recurring rules.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

// registerRecurringRoutes registers routes related to recurring rules.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := &recurringHandler{recurringService: recurringService}

	rules := rg.Group("/recurring-rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.GET("/:id", h.getRule)
		rules.PUT("/:id", h.updateRule)
		rules.POST("/generate", h.generateDue)
	}
}

func (h *recurringHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecurringRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rule, err := h.recurringService.CreateRule(c.Request.Context(), req)
	if err != nil {
		writeTransactionError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringRuleResponse(rule))
}

func (h *recurringHandler) getRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("id")

	rule, err := h.recurringService.GetRuleByID(c.Request.Context(), ruleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring rule not found"})
		} else {
			logger.Error("Failed to get recurring rule", slog.String("rule_id", ruleID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recurring rule"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringRuleResponse(rule))
}

func (h *recurringHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeArchived := c.Query("includeArchived") == "true"

	rules, err := h.recurringService.ListRules(c.Request.Context(), includeArchived)
	if err != nil {
		logger.Error("Failed to list recurring rules", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recurring rules"})
		return
	}

	out := make([]dto.RecurringRuleResponse, len(rules))
	for i := range rules {
		out[i] = dto.ToRecurringRuleResponse(&rules[i])
	}
	c.JSON(http.StatusOK, gin.H{"rules": out})
}

func (h *recurringHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID := c.Param("id")

	var req dto.UpdateRecurringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRecurringRule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rule, err := h.recurringService.UpdateRule(c.Request.Context(), ruleID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring rule not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update recurring rule", slog.String("rule_id", ruleID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recurring rule"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringRuleResponse(rule))
}

func (h *recurringHandler) generateDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if asOfPtr, ok := parseOptionalDate(c, "asOf"); !ok {
		return
	} else if asOfPtr != nil {
		asOf = *asOfPtr
	}

	resp, err := h.recurringService.GenerateDue(c.Request.Context(), asOf)
	if err != nil {
		writeTransactionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
