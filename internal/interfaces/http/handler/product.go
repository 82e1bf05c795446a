package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/monaco/tienda/internal/application/catalog"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// List handles GET /productos. ?activo=true keeps only active products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context(), c.Query("activo") == "true")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetByID handles GET /productos/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create handles POST /productos
func (h *ProductHandler) Create(c *gin.Context) {
	b := body(c)
	req := catalog.CreateProductRequest{
		Name:        b.String("nombre"),
		Price:       b.DecimalOr("precio", decimal.Zero),
		Description: b.String("descripcion"),
		ImageURL:    b.String("imagen_url"),
		Images:      b.Strings("imagenes"),
		VideoURL:    b.String("video_url"),
		Active:      b.Bool("activo", true),
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update handles PUT /productos/:id. Only keys present in the body change.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	b := body(c)
	req := catalog.UpdateProductRequest{
		Name:        b.OptionalString("nombre"),
		PriceSet:    b.Has("precio"),
		Description: b.OptionalString("descripcion"),
		ImageURL:    b.OptionalString("imagen_url"),
		VideoURL:    b.OptionalString("video_url"),
		Active:      b.OptionalBool("activo"),
		ImagesSet:   b.Has("imagenes"),
	}
	if req.PriceSet {
		req.Price = b.DecimalOr("precio", decimal.Zero)
	}
	if req.ImagesSet {
		req.Images = b.Strings("imagenes")
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /productos/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}
