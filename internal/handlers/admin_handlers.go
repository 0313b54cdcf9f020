package handlers

import (
	"net/http"

	"github.com/epeers/warehouse/internal/cache"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AdminHandler handles admin endpoints
type AdminHandler struct {
	memCache *cache.MemoryCache
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(memCache *cache.MemoryCache) *AdminHandler {
	return &AdminHandler{
		memCache: memCache,
	}
}

// CacheStats handles GET /admin/cache
// @Summary Evaluation cache statistics
// @Description Hit/miss counters and the number of cached evaluations and projections
// @Tags admin
// @Produce json
// @Success 200 {object} cache.Stats
// @Router /admin/cache [get]
func (h *AdminHandler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.memCache.Stats())
}

// ClearCache handles DELETE /admin/cache
// @Summary Clear the evaluation cache
// @Tags admin
// @Success 204
// @Router /admin/cache [delete]
func (h *AdminHandler) ClearCache(c *gin.Context) {
	before := h.memCache.Stats()
	h.memCache.Clear()
	log.WithFields(log.Fields{
		"breakdowns":  before.Breakdowns,
		"projections": before.Projections,
	}).Info("evaluation cache cleared")
	c.Status(http.StatusNoContent)
}
