package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the availability state of a product.
type ProductStatus string

const (
	ProductActive       ProductStatus = "active"
	ProductInactive     ProductStatus = "inactive"
	ProductDiscontinued ProductStatus = "discontinued"
)

// Product is a warehouse item. Stock quantity is mutated by the product
// service only; other services read it through the warehouse API.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	SKU           string          `json:"sku"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
	MaxStockLevel int             `json:"maxStockLevel"`
	Supplier      string          `json:"supplier"`
	Brand         string          `json:"brand"`
	Weight        decimal.Decimal `json:"weight"`
	Dimensions    string          `json:"dimensions"`
	Status        ProductStatus   `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
