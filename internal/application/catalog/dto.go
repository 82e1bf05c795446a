package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest carries a new product. A nil Price means the submitted
// value was not a finite number.
type CreateProductRequest struct {
	Name        string
	Price       *decimal.Decimal
	Description string
	ImageURL    string
	Images      []string
	VideoURL    string
	Active      bool
}

// UpdateProductRequest carries a partial update; nil fields are untouched
type UpdateProductRequest struct {
	Name        *string
	Price       *decimal.Decimal
	PriceSet    bool // Price was present, even if unparseable
	Description *string
	ImageURL    *string
	Images      []string
	ImagesSet   bool
	VideoURL    *string
	Active      *bool
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"nombre"`
	Slug        string    `json:"slug"`
	Price       float64   `json:"precio"`
	Description string    `json:"descripcion"`
	ImageURL    *string   `json:"imagen_url"`
	Images      []string  `json:"imagenes"`
	VideoURL    *string   `json:"video_url"`
	Active      bool      `json:"activo"`
	CreatedAt   time.Time `json:"creado_en"`
	UpdatedAt   time.Time `json:"actualizado_en"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Price:       p.Price.InexactFloat64(),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Images:      images,
		VideoURL:    p.VideoURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
