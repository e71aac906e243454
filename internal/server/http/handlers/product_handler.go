package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bakery/internal/domain/model"
	"github.com/polkiloo/bakery/internal/server/http/dto"
)

// ProductHandler manages catalog endpoints.
type ProductHandler struct {
	facade ProductFacade
	logger *slog.Logger
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{facade: facade, logger: logger}
}

// productForm collects the supplied multipart fields. Absent fields stay nil.
func productForm(c *gin.Context, image *model.Upload) model.ProductForm {
	return model.ProductForm{
		Name:        formValue(c, "name"),
		Description: formValue(c, "description"),
		Price:       formValue(c, "price"),
		Category:    formValue(c, "category"),
		Options:     formValue(c, "options"),
		Available:   formValue(c, "available"),
		Image:       image,
	}
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	image, release, err := formUpload(c, "image")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer release()

	product, err := h.facade.CreateProduct(c.Request.Context(), productForm(c, image))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ProductEnvelope{Success: true, Product: dto.NewProductResponse(*product)})
}

// Update handles PUT /api/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	image, release, err := formUpload(c, "image")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer release()

	product, err := h.facade.UpdateProduct(c.Request.Context(), c.Param("id"), productForm(c, image))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductEnvelope{Success: true, Product: dto.NewProductResponse(*product)})
}

// Toggle handles PUT /api/products/:id/toggle-hold.
func (h *ProductHandler) Toggle(c *gin.Context) {
	product, err := h.facade.ToggleProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToggleResponse{
		Success:   true,
		Available: product.Available,
		Product:   dto.NewProductResponse(*product),
	})
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Product deleted"))
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, dto.NewProductResponse(p))
	}
	c.JSON(http.StatusOK, dto.ProductsEnvelope{Success: true, Products: response})
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProductEnvelope{Success: true, Product: dto.NewProductResponse(*product)})
}
