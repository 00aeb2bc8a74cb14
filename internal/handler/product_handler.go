package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/service"
	"github.com/chakrahealing/admin_api/internal/utils"
)

// ProductHandler handles the products page.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /v1/admin/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, err := h.productService.List(c.Request.Context(), listQuery(c))
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve products")
		return
	}
	respondPage(c, "Products retrieved", page)
}

// GetProduct handles GET /v1/admin/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err, "Failed to retrieve product")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// CreateProduct handles POST /v1/admin/products (multipart: data + images)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	h.save(c, 0, 201, "Product created")
}

// UpdateProduct handles PUT /v1/admin/products/:id (multipart: data + images)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.save(c, id, 200, "Product updated")
}

func (h *ProductHandler) save(c *gin.Context, id int64, status int, message string) {
	var in service.ProductInput
	if err := bindForm(c, &in); err != nil {
		invalidRequest(c, err)
		return
	}
	in.ID = id

	uploads, closeFiles, err := formFiles(c, "images")
	if err != nil {
		invalidRequest(c, err)
		return
	}
	defer closeFiles()

	product, err := h.productService.Save(c.Request.Context(), in, uploads)
	if err != nil {
		utils.RespondError(c, err, "Failed to save product")
		return
	}
	utils.Success(c, status, message, product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id. Products are soft deleted.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err, "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}
