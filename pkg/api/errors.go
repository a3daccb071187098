package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/apperr"
)

// respondErr is the single place an apperr.Kind is translated into an HTTP
// status. No handler writes a status code for a service-layer failure
// itself — every handler funnels its error through here.
func respondErr(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		slog.Error("unclassified error reached the API boundary", "error", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
		return
	}

	switch appErr.Kind {
	case apperr.Validation:
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: appErr.Detail})
	case apperr.NotFound:
		c.JSON(http.StatusNotFound, errorResponse{Error: appErr.Detail})
	case apperr.Conflict:
		c.JSON(http.StatusConflict, errorResponse{Error: appErr.Detail})
	case apperr.Forbidden:
		c.JSON(http.StatusForbidden, errorResponse{Error: appErr.Detail})
	case apperr.Transient:
		slog.Error("transient failure at API boundary", "detail", appErr.Detail, "error", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	default:
		slog.Error("unexpected error kind reached the API boundary", "kind", appErr.Kind, "error", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	}
}
