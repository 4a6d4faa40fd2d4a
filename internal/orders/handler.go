package orders

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	coreErrors "github.com/shopcore-dev/shopcore/internal/core/errors"
	"github.com/shopcore-dev/shopcore/internal/store"
)

// Handler exposes the order lifecycle over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the order endpoints onto the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("/new", h.placeOrder)
	orders.GET("/my", h.myOrders)
	orders.GET("/all", h.allOrders)
	orders.GET("/:id", h.getOrder)
	orders.PUT("/:id/process", h.advanceOrder)
	orders.DELETE("/:id", h.deleteOrder)
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req NewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpInvalidJsonError,
			Message:   "Invalid JSON request body",
			Details:   err.Error(),
		})
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "place order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

func (h *Handler) myOrders(c *gin.Context) {
	userID := c.Query("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpValidationError,
			Message:   "Missing user id",
		})
		return
	}

	orders, err := h.service.MyOrders(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "load user orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) allOrders(c *gin.Context) {
	orders, err := h.service.AllOrders(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "load all orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "load order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *Handler) advanceOrder(c *gin.Context) {
	order, err := h.service.AdvanceOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "advance order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *Handler) deleteOrder(c *gin.Context) {
	if err := h.service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) writeError(c *gin.Context, err error, action string) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpValidationError,
			Message:   "Invalid order request",
			Details:   validationErr.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpNotFoundError,
			Message:   "Not found",
		})
	default:
		slog.Error("Order request failed", "action", action, "error", err)
		c.JSON(http.StatusInternalServerError, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpInternalError,
			Message:   "Failed to " + action,
		})
	}
}
