package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/models"
	"github.com/buchwerk/buchwerk/internal/utils/mapping"
)

// Quotes, orders and invoices share one document_lines table; the position
// column preserves the order the lines were entered in.

func insertDocumentLinesTx(ctx context.Context, tx pgx.Tx, documentID string, lines []domain.DocumentLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO document_lines (
			line_id, document_id, position, description, quantity, unit, unit_price,
			tax_rate_percent, delivered_quantity, invoiced_quantity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for i, line := range lines {
		m := mapping.ToModelDocumentLine(documentID, i+1, line)
		batch.Queue(query,
			m.LineID,
			m.DocumentID,
			m.Position,
			m.Description,
			m.Quantity,
			m.Unit,
			m.UnitPrice,
			m.TaxRatePercent,
			m.DeliveredQuantity,
			m.InvoicedQuantity,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert document lines for "+documentID, err)
	}
	return nil
}

func findDocumentLines(ctx context.Context, pool *pgxpool.Pool, documentID string) ([]domain.DocumentLine, error) {
	query := `
		SELECT line_id, document_id, position, description, quantity, unit, unit_price,
		       tax_rate_percent, delivered_quantity, invoiced_quantity
		FROM document_lines
		WHERE document_id = $1
		ORDER BY position;
	`
	rows, err := pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query document lines for "+documentID, err)
	}
	defer rows.Close()

	lines := []models.DocumentLine{}
	for rows.Next() {
		var m models.DocumentLine
		err := rows.Scan(
			&m.LineID,
			&m.DocumentID,
			&m.Position,
			&m.Description,
			&m.Quantity,
			&m.Unit,
			&m.UnitPrice,
			&m.TaxRatePercent,
			&m.DeliveredQuantity,
			&m.InvoicedQuantity,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document line row", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document line rows", err)
	}
	return mapping.ToDomainDocumentLineSlice(lines), nil
}

func updateLineProgressTx(ctx context.Context, tx pgx.Tx, documentID string, lines []domain.DocumentLine) error {
	batch := &pgx.Batch{}
	query := `
		UPDATE document_lines
		SET delivered_quantity = $3, invoiced_quantity = $4
		WHERE document_id = $1 AND line_id = $2;
	`
	for _, line := range lines {
		batch.Queue(query, documentID, line.LineID, line.DeliveredQuantity, line.InvoicedQuantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update document line progress for "+documentID, err)
	}
	return nil
}
