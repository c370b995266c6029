package dto

import (
	"time"

	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the inbound payload for the sale saga. Prices and
// amounts are deliberately absent: the unit price is read from the product
// service, never from the client.
type CreateSaleRequest struct {
	ProductID    int64  `json:"productId" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	CustomerName string `json:"customerName" binding:"required"`
}

// SaleResponse is the external representation of a persisted sale.
type SaleResponse struct {
	ID                 int64           `json:"id"`
	SaleNumber         string          `json:"saleNumber"`
	ProductID          int64           `json:"productId"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	FinalAmount        decimal.Decimal `json:"finalAmount"`
	SaleDate           time.Time       `json:"saleDate"`
	CustomerID         *int64          `json:"customerId,omitempty"`
	CustomerName       string          `json:"customerName"`
	Salesperson        string          `json:"salesperson,omitempty"`
	PaymentMethod      string          `json:"paymentMethod"`
	PaymentStatus      string          `json:"paymentStatus"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// ToSaleResponse converts a domain Sale to its external representation.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		ID:                 s.ID,
		SaleNumber:         s.SaleNumber,
		ProductID:          s.ProductID,
		Quantity:           s.Quantity,
		UnitPrice:          s.UnitPrice,
		TotalAmount:        s.TotalAmount,
		DiscountPercentage: s.DiscountPercentage,
		DiscountAmount:     s.DiscountAmount,
		FinalAmount:        s.FinalAmount,
		SaleDate:           s.SaleDate,
		CustomerID:         s.CustomerID,
		CustomerName:       s.CustomerName,
		Salesperson:        s.Salesperson,
		PaymentMethod:      s.PaymentMethod,
		PaymentStatus:      string(s.PaymentStatus),
		Notes:              s.Notes,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToSaleResponses converts a slice of domain Sales.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}
