package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	portsrepo "github.com/retailops/retail-suite/internal/core/ports/repositories"
)

type PgxProductRepository struct {
	pool *pgxpool.Pool
}

// NewPgxProductRepository creates a new repository for warehouse products.
func NewPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{pool: pool}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `id, name, description, category, price, cost, sku, stock_quantity,
	min_stock_level, max_stock_level, supplier, brand, weight, dimensions, status, created_at, updated_at`

// SaveProduct inserts a new product and fills in the generated row ID.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, category, price, cost, sku, stock_quantity,
			min_stock_level, max_stock_level, supplier, brand, weight, dimensions, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id;
	`
	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Category,
		product.Price,
		product.Cost,
		product.SKU,
		product.StockQuantity,
		product.MinStockLevel,
		product.MaxStockLevel,
		product.Supplier,
		product.Brand,
		product.Weight,
		product.Dimensions,
		product.Status,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with SKU %s already exists", apperrors.ErrDuplicate, product.SKU)
		}
		return fmt.Errorf("failed to save product %s: %w", product.SKU, err)
	}
	return nil
}

// UpdateProduct persists the full state of an existing product.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, cost = $6, sku = $7,
			stock_quantity = $8, min_stock_level = $9, max_stock_level = $10, supplier = $11,
			brand = $12, weight = $13, dimensions = $14, status = $15, updated_at = $16
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Category,
		product.Price,
		product.Cost,
		product.SKU,
		product.StockQuantity,
		product.MinStockLevel,
		product.MaxStockLevel,
		product.Supplier,
		product.Brand,
		product.Weight,
		product.Dimensions,
		product.Status,
		product.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with SKU %s already exists", apperrors.ErrDuplicate, product.SKU)
		}
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", apperrors.ErrNotFound, product.ID)
	}
	return nil
}

// FindProductByID retrieves a product by ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1;`, productColumns)

	row := r.pool.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find product by ID %d: %w", id, err)
	}
	return product, nil
}

// ListProducts retrieves all products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY name ASC;`, productColumns)
	return r.queryProducts(ctx, query)
}

// FindProductsByCategory retrieves products in a category.
func (r *PgxProductRepository) FindProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE category = $1 ORDER BY name ASC;`, productColumns)
	return r.queryProducts(ctx, query, category)
}

// FindLowStockProducts retrieves active products at or below their minimum
// stock level.
func (r *PgxProductRepository) FindLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE status = $1 AND stock_quantity <= min_stock_level ORDER BY stock_quantity ASC;`, productColumns)
	return r.queryProducts(ctx, query, domain.ProductActive)
}

func (r *PgxProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating product rows: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.Price,
		&product.Cost,
		&product.SKU,
		&product.StockQuantity,
		&product.MinStockLevel,
		&product.MaxStockLevel,
		&product.Supplier,
		&product.Brand,
		&product.Weight,
		&product.Dimensions,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
