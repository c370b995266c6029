// Package remote implements the gateway ports as thin HTTP clients against
// the sibling services. Error kinds stay distinguishable: remote 404s map to
// apperrors.ErrNotFound, entry-number conflicts to apperrors.ErrDuplicate,
// and everything else to apperrors.RemoteError.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/retailops/retail-suite/internal/core/ports/gateways"
	"github.com/retailops/retail-suite/internal/dto"
	"resty.dev/v3"
)

// ProductClient implements gateways.ProductStockGateway against the
// warehouse API of the product service.
type ProductClient struct {
	client *resty.Client
}

// NewProductClient creates a product gateway client. All calls are bounded
// by the given timeout.
func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &ProductClient{client: client}
}

var _ gateways.ProductStockGateway = (*ProductClient)(nil)

// GetProduct fetches the current product state by ID.
func (c *ProductClient) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var body dto.ProductResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("/api/warehouse/products/%d", productID))
	if err != nil {
		return nil, &apperrors.RemoteError{Service: "product", Err: err}
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("product %d: %w", productID, apperrors.ErrNotFound)
	}
	if res.IsError() {
		return nil, &apperrors.RemoteError{Service: "product", StatusCode: res.StatusCode()}
	}

	product := body.ToProduct()
	return &product, nil
}

// UpdateProduct pushes the full product state, including the decremented
// stock quantity.
func (c *ProductClient) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	var body dto.ProductResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(dto.FromProduct(product)).
		SetResult(&body).
		Put(fmt.Sprintf("/api/warehouse/products/%d", product.ID))
	if err != nil {
		return nil, &apperrors.RemoteError{Service: "product", Err: err}
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("product %d: %w", product.ID, apperrors.ErrNotFound)
	}
	if res.IsError() {
		return nil, &apperrors.RemoteError{Service: "product", StatusCode: res.StatusCode()}
	}

	updated := body.ToProduct()
	return &updated, nil
}

// Close releases the underlying HTTP client resources.
func (c *ProductClient) Close() error {
	return c.client.Close()
}
