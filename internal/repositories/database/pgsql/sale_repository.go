package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	portsrepo "github.com/retailops/retail-suite/internal/core/ports/repositories"
)

type PgxSaleRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSaleRepository creates a new repository for sale records.
func NewPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{pool: pool}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleColumns = `id, sale_number, product_id, quantity, unit_price, total_amount,
	discount_percentage, discount_amount, final_amount, sale_date, customer_id,
	customer_name, salesperson, payment_method, payment_status, notes, created_at, updated_at`

// SaveSale inserts a new sale and fills in the generated row ID.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (sale_number, product_id, quantity, unit_price, total_amount,
			discount_percentage, discount_amount, final_amount, sale_date, customer_id,
			customer_name, salesperson, payment_method, payment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id;
	`
	err := r.pool.QueryRow(ctx, query,
		sale.SaleNumber,
		sale.ProductID,
		sale.Quantity,
		sale.UnitPrice,
		sale.TotalAmount,
		sale.DiscountPercentage,
		sale.DiscountAmount,
		sale.FinalAmount,
		sale.SaleDate,
		sale.CustomerID,
		sale.CustomerName,
		sale.Salesperson,
		sale.PaymentMethod,
		sale.PaymentStatus,
		sale.Notes,
		sale.CreatedAt,
		sale.UpdatedAt,
	).Scan(&sale.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sale with number %s already exists", apperrors.ErrDuplicate, sale.SaleNumber)
		}
		return fmt.Errorf("failed to save sale %s: %w", sale.SaleNumber, err)
	}
	return nil
}

// FindSaleByNumber retrieves a sale by its sale number.
func (r *PgxSaleRepository) FindSaleByNumber(ctx context.Context, saleNumber string) (*domain.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales WHERE sale_number = $1;`, saleColumns)

	row := r.pool.QueryRow(ctx, query, saleNumber)
	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleNumber)
		}
		return nil, fmt.Errorf("failed to find sale by number %s: %w", saleNumber, err)
	}
	return sale, nil
}

// ListSales retrieves all sales, newest first.
func (r *PgxSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales ORDER BY sale_date DESC, id DESC;`, saleColumns)
	return r.querySales(ctx, query)
}

// FindSalesByCustomer retrieves sales matching a customer name fragment.
func (r *PgxSaleRepository) FindSalesByCustomer(ctx context.Context, customerName string) ([]domain.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales WHERE customer_name ILIKE '%%' || $1 || '%%' ORDER BY sale_date DESC, id DESC;`, saleColumns)
	return r.querySales(ctx, query, customerName)
}

// FindSalesByDateRange retrieves sales within [start, end] inclusive.
func (r *PgxSaleRepository) FindSalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales WHERE sale_date >= $1 AND sale_date <= $2 ORDER BY sale_date DESC, id DESC;`, saleColumns)
	return r.querySales(ctx, query, start, end)
}

func (r *PgxSaleRepository) querySales(ctx context.Context, query string, args ...any) ([]domain.Sale, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating sale rows: %w", err)
	}
	return sales, nil
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var sale domain.Sale
	err := row.Scan(
		&sale.ID,
		&sale.SaleNumber,
		&sale.ProductID,
		&sale.Quantity,
		&sale.UnitPrice,
		&sale.TotalAmount,
		&sale.DiscountPercentage,
		&sale.DiscountAmount,
		&sale.FinalAmount,
		&sale.SaleDate,
		&sale.CustomerID,
		&sale.CustomerName,
		&sale.Salesperson,
		&sale.PaymentMethod,
		&sale.PaymentStatus,
		&sale.Notes,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
