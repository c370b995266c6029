package dto

import (
	"time"

	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the inbound payload for creating a product.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Cost          decimal.Decimal `json:"cost"`
	SKU           string          `json:"sku" binding:"required"`
	StockQuantity int             `json:"stockQuantity" binding:"gte=0"`
	MinStockLevel int             `json:"minStockLevel" binding:"gte=0"`
	MaxStockLevel int             `json:"maxStockLevel" binding:"gte=0"`
	Supplier      string          `json:"supplier"`
	Brand         string          `json:"brand"`
	Weight        decimal.Decimal `json:"weight"`
	Dimensions    string          `json:"dimensions"`
}

// UpdateProductRequest carries the full replacement state for a product,
// matching the PUT semantics of the warehouse API: the sales service sends
// the whole object back with a decremented stock quantity.
type UpdateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Cost          decimal.Decimal `json:"cost"`
	SKU           string          `json:"sku" binding:"required"`
	StockQuantity int             `json:"stockQuantity" binding:"gte=0"`
	MinStockLevel int             `json:"minStockLevel" binding:"gte=0"`
	MaxStockLevel int             `json:"maxStockLevel" binding:"gte=0"`
	Supplier      string          `json:"supplier"`
	Brand         string          `json:"brand"`
	Weight        decimal.Decimal `json:"weight"`
	Dimensions    string          `json:"dimensions"`
	Status        string          `json:"status"`
}

// UpdateStockRequest sets an absolute stock quantity.
type UpdateStockRequest struct {
	StockQuantity int `json:"stockQuantity" binding:"gte=0"`
}

// ProductResponse is the external representation of a product.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	SKU           string          `json:"sku"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
	MaxStockLevel int             `json:"maxStockLevel"`
	Supplier      string          `json:"supplier,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	Weight        decimal.Decimal `json:"weight"`
	Dimensions    string          `json:"dimensions,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain Product to its external
// representation.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		Cost:          p.Cost,
		SKU:           p.SKU,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		Supplier:      p.Supplier,
		Brand:         p.Brand,
		Weight:        p.Weight,
		Dimensions:    p.Dimensions,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToProduct converts a response payload back to a domain Product. The
// product gateway uses this to turn warehouse API payloads into domain
// state.
func (r ProductResponse) ToProduct() domain.Product {
	return domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		Price:         r.Price,
		Cost:          r.Cost,
		SKU:           r.SKU,
		StockQuantity: r.StockQuantity,
		MinStockLevel: r.MinStockLevel,
		MaxStockLevel: r.MaxStockLevel,
		Supplier:      r.Supplier,
		Brand:         r.Brand,
		Weight:        r.Weight,
		Dimensions:    r.Dimensions,
		Status:        domain.ProductStatus(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromProduct builds the wire payload for a full product update.
func FromProduct(p domain.Product) UpdateProductRequest {
	return UpdateProductRequest{
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		Cost:          p.Cost,
		SKU:           p.SKU,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		Supplier:      p.Supplier,
		Brand:         p.Brand,
		Weight:        p.Weight,
		Dimensions:    p.Dimensions,
		Status:        string(p.Status),
	}
}
