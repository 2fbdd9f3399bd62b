package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/docushop/storefront/internal/core/domain"
)

type createProductRequest struct {
	Name        string           `json:"name"        validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"required"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	Variants    []string         `json:"variants"`
	Available   *bool            `json:"available"`
}

func (r createProductRequest) toDomain() domain.Product {
	p := domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Image:       r.Image,
		Variants:    r.Variants,
		Available:   true,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Available != nil {
		p.Available = *r.Available
	}
	if p.Variants == nil {
		p.Variants = []string{}
	}
	return p
}

// updateProductRequest is a partial update: omitted fields stay unchanged.
type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Image       *string          `json:"image"`
	Variants    *[]string        `json:"variants"`
	Available   *bool            `json:"available"`
}

func (r updateProductRequest) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Variants:    r.Variants,
		Available:   r.Available,
	}
}

type productResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" swaggertype:"number"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Variants    []string    `json:"variants"`
	Available   bool        `json:"available"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toProductResponse(p *domain.Product) productResponse {
	variants := p.Variants
	if variants == nil {
		variants = []string{}
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Category:    p.Category,
		Image:       p.Image,
		Variants:    variants,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type shippingRatesRequest struct {
	Discreet *decimal.Decimal `json:"discreet" validate:"required"`
	Express  *decimal.Decimal `json:"express"  validate:"required"`
}

type shippingRatesResponse struct {
	Discreet json.Number `json:"discreet" swaggertype:"number"`
	Express  json.Number `json:"express"  swaggertype:"number"`
}

func toShippingRatesResponse(r domain.ShippingRates) shippingRatesResponse {
	return shippingRatesResponse{
		Discreet: money(r.Discreet),
		Express:  money(r.Express),
	}
}
