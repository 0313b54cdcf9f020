package handlers

import (
	"github.com/epeers/warehouse/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every API endpoint onto router
func RegisterRoutes(router *gin.Engine, calc *CalculatorHandler, scenarios *ScenarioHandler, users *UserHandler, admin *AdminHandler) {
	// Calculator routes
	router.GET("/defaults", calc.Defaults)
	router.POST("/calculate", calc.Calculate)
	router.POST("/projection", calc.Project)
	router.POST("/breakeven", calc.Breakeven)
	router.POST("/sweep", calc.Sweep)
	router.POST("/shares/normalize", calc.NormalizeShares)
	router.POST("/export/csv", calc.ExportCSV)

	// Scenario routes
	router.POST("/scenarios", scenarios.Create)
	router.GET("/scenarios/:id", scenarios.Get)
	router.GET("/scenarios/:id/export", scenarios.Export)
	authed := router.Group("/scenarios", middleware.RequireAuth())
	authed.POST("/import", scenarios.Import)
	authed.PUT("/:id", scenarios.Update)
	authed.DELETE("/:id", scenarios.Delete)

	// User routes
	router.GET("/users/:user_id/scenarios", users.ListScenarios)

	// Admin routes
	router.GET("/admin/cache", admin.CacheStats)
	router.DELETE("/admin/cache", admin.ClearCache)
}
