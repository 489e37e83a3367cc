package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
	"github.com/buchwerk/buchwerk/internal/models"
	"github.com/buchwerk/buchwerk/internal/utils/mapping"
)

const orderColumns = `document_id, company_id, document_number, contact_id, issue_date, currency_code,
	status, quote_id, subtotal, tax_total, total,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for order data.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepository {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrderRepository = (*PgxOrderRepository)(nil)

func scanOrder(row pgx.Row) (*models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.DocumentNumber,
		&m.ContactID,
		&m.IssueDate,
		&m.CurrencyCode,
		&m.Status,
		&m.QuoteID,
		&m.Subtotal,
		&m.TaxTotal,
		&m.Total,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func insertOrderTx(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.DocumentID,
		m.CompanyID,
		m.DocumentNumber,
		m.ContactID,
		m.IssueDate,
		m.CurrencyCode,
		m.Status,
		m.QuoteID,
		m.Subtotal,
		m.TaxTotal,
		m.Total,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert order "+m.DocumentID, err)
	}
	return insertDocumentLinesTx(ctx, tx, order.DocumentID, order.Lines)
}

// SaveOrder persists a new order header and its lines in one transaction.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertOrderTx(ctx, tx, order); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveOrderFromQuote persists the order and moves the originating quote to
// ORDERED in one transaction. The quote update carries an ACCEPTED status
// guard so two concurrent conversions cannot both succeed.
func (r *PgxOrderRepository) SaveOrderFromQuote(ctx context.Context, order domain.Order, quote domain.Quote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertOrderTx(ctx, tx, order); err != nil {
		return err
	}

	mq := mapping.ToModelQuote(quote)
	quoteQuery := `
		UPDATE quotes
		SET status = $2, order_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE document_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, quoteQuery,
		mq.DocumentID,
		mq.Status,
		mq.OrderID,
		mq.LastUpdatedAt,
		mq.LastUpdatedBy,
		string(domain.QuoteAccepted),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark quote ordered "+mq.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return r.Commit(ctx, tx)
}

// FindOrderByID retrieves an order with its lines.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE document_id = $1;`
	m, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find order by ID "+orderID, err)
	}

	lines, err := findDocumentLines(ctx, r.Pool, orderID)
	if err != nil {
		return nil, err
	}

	order := mapping.ToDomainOrder(*m)
	order.Lines = lines
	return &order, nil
}

// UpdateOrder replaces the order header and the per-line fulfilment counters
// in one transaction.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOrder(order)
	query := `
		UPDATE orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	tag, err := tx.Exec(ctx, query, m.DocumentID, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update order "+m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := updateLineProgressTx(ctx, tx, order.DocumentID, order.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ListOrders retrieves a page of order headers for a company, newest first.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, companyID string, limit int, offset int) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE company_id = $1
		ORDER BY issue_date DESC, document_number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query orders for company "+companyID, err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order row", err)
		}
		orders = append(orders, mapping.ToDomainOrder(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order rows", err)
	}
	return orders, nil
}
