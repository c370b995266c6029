package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus reflects how far the customer payment has progressed. It is
// mutable after the sale itself is committed.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
)

// Sale is the persisted record of a completed sale. Once saved it is
// immutable except for its payment status.
type Sale struct {
	ID                 int64           `json:"id"`
	SaleNumber         string          `json:"saleNumber"`
	ProductID          int64           `json:"productId"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"` // copied from the product at sale time
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	FinalAmount        decimal.Decimal `json:"finalAmount"`
	SaleDate           time.Time       `json:"saleDate"`
	CustomerID         *int64          `json:"customerId,omitempty"`
	CustomerName       string          `json:"customerName"`
	Salesperson        string          `json:"salesperson"`
	PaymentMethod      string          `json:"paymentMethod"`
	PaymentStatus      PaymentStatus   `json:"paymentStatus"`
	Notes              string          `json:"notes"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// NewSaleNumber generates a human-readable sale number: SALE- followed by
// the first eight characters of a UUID, uppercased.
func NewSaleNumber() string {
	return "SALE-" + strings.ToUpper(uuid.NewString()[:8])
}

// Recalculate derives the computed amounts from unit price, quantity and
// discount. Amounts are never trusted from external input: callers set the
// inputs and this recomputes the rest.
func (s *Sale) Recalculate() {
	s.TotalAmount = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
	if s.DiscountPercentage.IsPositive() {
		s.DiscountAmount = s.TotalAmount.Mul(s.DiscountPercentage).Div(decimal.NewFromInt(100))
	}
	s.FinalAmount = s.TotalAmount.Sub(s.DiscountAmount)
}
