package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/monaco/tienda/internal/domain/catalog"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/monaco/tienda/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List returns products newest first, optionally only the active ones
func (s *ProductService) List(ctx context.Context, activeOnly bool) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx, catalog.ProductFilter{ActiveOnly: activeOnly})
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	return ToProductResponses(products), nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create validates and stores a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create")
	defer span.End()

	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}
	product, err := catalog.NewProduct(req.Name, price)
	if err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, shared.NewValidationError(catalog.MsgInvalidPrice)
	}

	product.Description = req.Description
	product.SetMedia(req.ImageURL, req.Images, req.VideoURL)
	product.Active = req.Active

	if err := s.productRepo.Create(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewPersistenceError(err)
	}
	span.SetAttributes(attribute.String("product.id", product.ID.String()))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update applies the fields present in req. An empty change set is rejected
// before the store is touched.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "update",
		attribute.String("product.id", id.String()),
	)
	defer span.End()

	if req.PriceSet && req.Price == nil {
		return nil, shared.NewValidationError(catalog.MsgInvalidPrice)
	}
	changes := catalog.ProductChanges{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		ImagesSet:   req.ImagesSet,
		VideoURL:    req.VideoURL,
		Active:      req.Active,
	}
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewPersistenceError(err)
	}
	if err := product.Apply(changes); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewPersistenceError(err)
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete hard-deletes a product. Order items keep their snapshot.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return shared.NewPersistenceError(err)
	}
	return nil
}
