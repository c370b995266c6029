package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	portsrepo "github.com/retailops/retail-suite/internal/core/ports/repositories"
	portssvc "github.com/retailops/retail-suite/internal/core/ports/services"
	"github.com/retailops/retail-suite/internal/dto"
	"github.com/retailops/retail-suite/internal/middleware"
	"github.com/retailops/retail-suite/pkg/validator"
)

// productService provides warehouse product operations.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	now         func() time.Time
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		now:         time.Now,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct persists a new product in active status.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.now().UTC()
	product := domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		Cost:          req.Cost,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
		Supplier:      req.Supplier,
		Brand:         req.Brand,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
		Status:        domain.ProductActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.productRepo.SaveProduct(ctx, &product); err != nil {
		return nil, err
	}

	logger.Info("Product created", slog.Int64("product_id", product.ID), slog.String("sku", product.SKU))
	return &product, nil
}

// GetProductByID retrieves a product by ID.
func (s *productService) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %d: %w", id, err)
	}
	return product, nil
}

// ListProducts retrieves all products.
func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListProducts(ctx)
}

// UpdateProduct replaces the full state of an existing product. This is the
// write the sales service uses to push a decremented stock quantity.
func (s *productService) UpdateProduct(ctx context.Context, id int64, req dto.UpdateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %d: %w", id, err)
	}

	status := product.Status
	if req.Status != "" {
		switch domain.ProductStatus(req.Status) {
		case domain.ProductActive, domain.ProductInactive, domain.ProductDiscontinued:
			status = domain.ProductStatus(req.Status)
		default:
			return nil, fmt.Errorf("%w: unknown product status %q", apperrors.ErrValidation, req.Status)
		}
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.Cost = req.Cost
	product.SKU = req.SKU
	product.StockQuantity = req.StockQuantity
	product.MinStockLevel = req.MinStockLevel
	product.MaxStockLevel = req.MaxStockLevel
	product.Supplier = req.Supplier
	product.Brand = req.Brand
	product.Weight = req.Weight
	product.Dimensions = req.Dimensions
	product.Status = status
	product.UpdatedAt = s.now().UTC()

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}

	logger.Info("Product updated", slog.Int64("product_id", id), slog.Int("stock_quantity", product.StockQuantity))
	return product, nil
}

// UpdateProductStock sets an absolute stock quantity for a product.
func (s *productService) UpdateProductStock(ctx context.Context, id int64, stockQuantity int) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if stockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity must not be negative", apperrors.ErrValidation)
	}

	product, err := s.productRepo.FindProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %d: %w", id, err)
	}

	product.StockQuantity = stockQuantity
	product.UpdatedAt = s.now().UTC()

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update stock for product %d: %w", id, err)
	}

	logger.Info("Product stock updated", slog.Int64("product_id", id), slog.Int("stock_quantity", stockQuantity))
	return product, nil
}

// ListProductsByCategory retrieves products in a category.
func (s *productService) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.productRepo.FindProductsByCategory(ctx, category)
}

// ListLowStockProducts retrieves active products at or below their minimum
// stock level.
func (s *productService) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.FindLowStockProducts(ctx)
}
