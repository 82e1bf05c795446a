package catalog

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/monaco/tienda/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Validation messages
const (
	MsgNameRequired = "name is required"
	MsgInvalidPrice = "invalid price"
	MsgNoChanges    = "no changes to update"
)

// Product represents a catalog item
// Active governs storefront visibility. Deletion is destructive.
type Product struct {
	shared.BaseEntity
	Name        string
	Slug        string
	Price       decimal.Decimal
	Description string
	ImageURL    *string
	Images      []string
	VideoURL    *string
	Active      bool
}

// NewProduct creates a new active product
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug.Make(name),
		Price:      price.Round(shared.MoneyScale),
		Images:     []string{},
		Active:     true,
	}, nil
}

// SetMedia replaces the media references. Blank entries are dropped and
// blank URLs become nil.
func (p *Product) SetMedia(imageURL string, images []string, videoURL string) {
	p.ImageURL = optionalURL(imageURL)
	p.Images = CleanImages(images)
	p.VideoURL = optionalURL(videoURL)
}

// ProductChanges carries a partial update. Nil fields are left untouched.
// An empty ImageURL or VideoURL clears the stored reference.
type ProductChanges struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	ImageURL    *string
	Images      []string
	ImagesSet   bool
	VideoURL    *string
	Active      *bool
}

// IsEmpty reports whether the change set touches nothing
func (c ProductChanges) IsEmpty() bool {
	return c.Name == nil &&
		c.Price == nil &&
		c.Description == nil &&
		c.ImageURL == nil &&
		!c.ImagesSet &&
		c.VideoURL == nil &&
		c.Active == nil
}

// Validate checks the fields present in the change set
func (c ProductChanges) Validate() error {
	if c.Name != nil {
		if err := validateName(strings.TrimSpace(*c.Name)); err != nil {
			return err
		}
	}
	if c.Price != nil {
		if err := validatePrice(*c.Price); err != nil {
			return err
		}
	}
	if c.IsEmpty() {
		return shared.NewValidationError(MsgNoChanges)
	}
	return nil
}

// Apply validates and applies a partial update
func (p *Product) Apply(c ProductChanges) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.Name != nil {
		p.Name = strings.TrimSpace(*c.Name)
		p.Slug = slug.Make(p.Name)
	}
	if c.Price != nil {
		p.Price = c.Price.Round(shared.MoneyScale)
	}
	if c.Description != nil {
		p.Description = strings.TrimSpace(*c.Description)
	}
	if c.ImageURL != nil {
		p.ImageURL = optionalURL(*c.ImageURL)
	}
	if c.ImagesSet {
		p.Images = CleanImages(c.Images)
	}
	if c.VideoURL != nil {
		p.VideoURL = optionalURL(*c.VideoURL)
	}
	if c.Active != nil {
		p.Active = *c.Active
	}
	p.UpdatedAt = time.Now()

	return nil
}

// CleanImages trims every reference and drops the empty ones
func CleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

func optionalURL(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

func validateName(name string) error {
	if name == "" {
		return shared.NewValidationError(MsgNameRequired)
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError(MsgInvalidPrice)
	}
	return nil
}
