package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/catalog"
	"github.com/matan1995el-lgtm/aliexpres/internal/models"
	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// ProductHandler handles product CRUD HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	criteria := parseCriteria(c)
	sortBy := catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortScoreDesc)))

	products := h.productService.List(criteria, sortBy)
	utils.Success(c, 200, "Products retrieved", products)
}

// Create handles POST /v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.productService.Add(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 201, "Product created", p)
}

// Get handles GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.productService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved", p)
}

// Update handles PUT /v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Invalid request body")
		return
	}

	p, err := h.productService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Product updated", p)
}

// Delete handles DELETE /v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}
