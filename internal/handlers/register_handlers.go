package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/triplebook/triplebook/internal/core/ports/services"
	"github.com/triplebook/triplebook/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	RegisterAccountRoutes(v1, services.Account, services.Ledger)
	registerBudgetRoutes(v1, services.Budget)
	registerExchangeRateRoutes(v1, services.Rate, services.Conversion)
	registerTransactionRoutes(v1, services.Ledger)
	registerBuilderRoutes(v1, services.Builder)
	registerReportingRoutes(v1, services.Ledger, cfg.DefaultDisplayCurrency)
	registerRecurringRoutes(v1, services.Recurring)
	registerSyncRoutes(v1, services.Sync)
}

// parseOptionalDate reads an RFC3339 or date-only query parameter. A missing
// parameter yields (nil, true); a malformed one writes the 400 and yields
// false.
func parseOptionalDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := parseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ": " + err.Error()})
		return nil, false
	}
	return &t, true
}

// parseRequiredDate is parseOptionalDate for parameters that must be present.
func parseRequiredDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " query parameter is required"})
		return time.Time{}, false
	}
	t, err := parseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ": " + err.Error()})
		return time.Time{}, false
	}
	return t, true
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
