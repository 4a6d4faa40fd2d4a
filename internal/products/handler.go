package products

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	coreErrors "github.com/shopcore-dev/shopcore/internal/core/errors"
	"github.com/shopcore-dev/shopcore/internal/store"
)

// Handler exposes the product catalog over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the product endpoints onto the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("/latest", h.latest)
	products.GET("/categories", h.categories)
	products.GET("/all", h.all)
	products.POST("/new", h.create)
	products.GET("/:id", h.get)
	products.PUT("/:id", h.update)
	products.DELETE("/:id", h.delete)
}

func (h *Handler) latest(c *gin.Context) {
	products, err := h.service.Latest(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "load latest products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *Handler) categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

func (h *Handler) all(c *gin.Context) {
	products, err := h.service.All(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "load products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *Handler) get(c *gin.Context) {
	product, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "load product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *Handler) create(c *gin.Context) {
	var req NewProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpInvalidJsonError,
			Message:   "Invalid JSON request body",
			Details:   err.Error(),
		})
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpInvalidJsonError,
			Message:   "Invalid JSON request body",
			Details:   err.Error(),
		})
		return
	}

	product, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "update product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "delete product")
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
			Message:   "Invalid product request",
			Details:   validationErr.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpNotFoundError,
			Message:   "Not found",
		})
	default:
		slog.Error("Product request failed", "action", action, "error", err)
		c.JSON(http.StatusInternalServerError, coreErrors.ErrorResponse{
			ErrorType: coreErrors.HttpInternalError,
			Message:   "Failed to " + action,
		})
	}
}
