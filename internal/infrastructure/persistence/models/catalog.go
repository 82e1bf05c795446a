package models

import (
	"github.com/monaco/tienda/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product entity
type ProductModel struct {
	BaseModel
	Name        string          `gorm:"column:nombre;type:varchar(200);not null"`
	Slug        string          `gorm:"column:slug;type:varchar(220);not null;default:'';index"`
	Price       decimal.Decimal `gorm:"column:precio;type:decimal(12,2);not null;default:0"`
	Description string          `gorm:"column:descripcion;type:text;not null;default:''"`
	ImageURL    *string         `gorm:"column:imagen_url;type:text"`
	Images      StringList      `gorm:"column:imagenes;type:jsonb;not null;default:'[]'"`
	VideoURL    *string         `gorm:"column:video_url;type:text"`
	Active      bool            `gorm:"column:activo;not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "productos"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	images := []string(m.Images)
	if images == nil {
		images = []string{}
	}
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Slug:        m.Slug,
		Price:       m.Price,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Images:      images,
		VideoURL:    m.VideoURL,
		Active:      m.Active,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Slug = p.Slug
	m.Price = p.Price
	m.Description = p.Description
	m.ImageURL = p.ImageURL
	m.Images = StringList(p.Images)
	m.VideoURL = p.VideoURL
	m.Active = p.Active
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
