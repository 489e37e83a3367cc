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

const invoiceColumns = `document_id, company_id, document_number, contact_id, issue_date, currency_code,
	status, due_date, booked_at, entry_id, payment_entry_id, order_id, subtotal, tax_total, total,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.DocumentNumber,
		&m.ContactID,
		&m.IssueDate,
		&m.CurrencyCode,
		&m.Status,
		&m.DueDate,
		&m.BookedAt,
		&m.EntryID,
		&m.PaymentEntryID,
		&m.OrderID,
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

// SaveInvoice persists a new invoice header and its lines in one transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, query,
		m.DocumentID,
		m.CompanyID,
		m.DocumentNumber,
		m.ContactID,
		m.IssueDate,
		m.CurrencyCode,
		m.Status,
		m.DueDate,
		m.BookedAt,
		m.EntryID,
		m.PaymentEntryID,
		m.OrderID,
		m.Subtotal,
		m.TaxTotal,
		m.Total,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+m.DocumentID, err)
	}
	if err := insertDocumentLinesTx(ctx, tx, invoice.DocumentID, invoice.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice with its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE document_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	lines, err := findDocumentLines(ctx, r.Pool, invoiceID)
	if err != nil {
		return nil, err
	}

	invoice := mapping.ToDomainInvoice(*m)
	invoice.Lines = lines
	return &invoice, nil
}

func updateInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, expectedStatus domain.InvoiceStatus) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET status = $2, booked_at = $3, entry_id = $4, payment_entry_id = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE document_id = $1 AND status = $8;
	`
	tag, err := tx.Exec(ctx, query,
		m.DocumentID,
		m.Status,
		m.BookedAt,
		m.EntryID,
		m.PaymentEntryID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(expectedStatus),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// UpdateInvoice replaces the invoice header while the stored status still
// matches expectedStatus.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedStatus domain.InvoiceStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateInvoiceTx(ctx, tx, invoice, expectedStatus); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return r.explainMissedUpdate(ctx, "invoices", invoice.DocumentID)
		}
		return err
	}
	return r.Commit(ctx, tx)
}

// BookInvoice persists the booking journal entry and moves the invoice
// DRAFT -> BOOKED in one transaction. The status guard keeps a double book
// from inserting the entry twice.
func (r *PgxInvoiceRepository) BookInvoice(ctx context.Context, invoice domain.Invoice, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := updateInvoiceTx(ctx, tx, invoice, domain.InvoiceDraft); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MarkInvoicePaid persists the payment journal entry and moves the invoice to
// PAID in one transaction. The status guard admits SENT and OVERDUE; anything
// else aborts both the entry and the status change.
func (r *PgxInvoiceRepository) MarkInvoicePaid(ctx context.Context, invoice domain.Invoice, paymentEntry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, paymentEntry); err != nil {
		return err
	}

	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET status = $2, payment_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE document_id = $1 AND status IN ($6, $7);
	`
	tag, err := tx.Exec(ctx, query,
		m.DocumentID,
		m.Status,
		m.PaymentEntryID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(domain.InvoiceSent),
		string(domain.InvoiceOverdue),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark invoice paid "+m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return r.Commit(ctx, tx)
}

// ListInvoices retrieves a page of invoice headers for a company, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, companyID string, limit int, offset int) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1
		ORDER BY issue_date DESC, document_number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices for company "+companyID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return invoices, nil
}
