package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/shopcore-dev/shopcore/internal/core/errors"
)

// RegisterRoutes registers the dashboard API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/dashboard/stats", s.HandleStats)
	r.GET("/v1/dashboard/pie", s.HandlePie)
	r.GET("/v1/dashboard/bar", s.HandleBar)
	r.GET("/v1/dashboard/line", s.HandleLine)
}

// HandleStats handles GET /v1/dashboard/stats
func (s *Service) HandleStats(c *gin.Context) {
	view, err := s.Stats(c.Request.Context())
	if err != nil {
		writeAggregationError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": view})
}

// HandlePie handles GET /v1/dashboard/pie
func (s *Service) HandlePie(c *gin.Context) {
	view, err := s.Pie(c.Request.Context())
	if err != nil {
		writeAggregationError(c, "pie", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "charts": view})
}

// HandleBar handles GET /v1/dashboard/bar
func (s *Service) HandleBar(c *gin.Context) {
	view, err := s.Bar(c.Request.Context())
	if err != nil {
		writeAggregationError(c, "bar", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "charts": view})
}

// HandleLine handles GET /v1/dashboard/line
func (s *Service) HandleLine(c *gin.Context) {
	view, err := s.Line(c.Request.Context())
	if err != nil {
		writeAggregationError(c, "line", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "charts": view})
}

// writeAggregationError maps builder failures to a 500: the record store is
// the only thing that can fail here, and a miss is never an error.
func writeAggregationError(c *gin.Context, view string, err error) {
	slog.Error("Dashboard aggregation failed", "view", view, "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   "Failed to build dashboard view",
		Details:   err.Error(),
	})
}
