package admin

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	coreErrors "github.com/shopcore-dev/shopcore/internal/core/errors"
)

// Handler exposes the order-accepting flag over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the admin endpoints onto the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	adminGroup := rg.Group("/admin")
	adminGroup.GET("/order-status", h.getOrderStatus)
	adminGroup.PUT("/order-status", h.putOrderStatus)
}

func (h *Handler) getOrderStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"acceptingOrders": h.service.Accepting(),
	})
}

func (h *Handler) putOrderStatus(c *gin.Context) {
	var req struct {
		AcceptingOrders *bool `json:"acceptingOrders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AcceptingOrders == nil {
		c.JSON(http.StatusBadRequest, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpInvalidJsonError,
			Message:   "Request body must carry acceptingOrders",
		})
		return
	}

	if err := h.service.SetAccepting(c.Request.Context(), *req.AcceptingOrders); err != nil {
		slog.Error("Failed to change order accepting flag", "error", err)
		c.JSON(http.StatusInternalServerError, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpInternalError,
			Message:   "Failed to change order accepting flag",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"acceptingOrders": *req.AcceptingOrders,
	})
}
