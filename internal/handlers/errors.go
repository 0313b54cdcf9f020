package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/epeers/warehouse/internal/engine"
	"github.com/epeers/warehouse/internal/models"
	"github.com/epeers/warehouse/internal/scenario"
	"github.com/epeers/warehouse/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// respondError maps service and engine errors to API error responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidParams):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: services.ErrInvalidParams.Error(),
			Details: services.ProblemsOf(err),
		})
	case errors.Is(err, engine.ErrUnknownParam),
		errors.Is(err, services.ErrUnknownShare),
		errors.Is(err, scenario.ErrUnsupportedFormat),
		errors.Is(err, scenario.ErrMalformed):
		badRequest(c, err.Error())
	case errors.Is(err, services.ErrScenarioNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "scenario not found",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict",
			Message: "scenario with same name already exists",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "not authorized to modify this scenario",
		})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func parseUserID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
