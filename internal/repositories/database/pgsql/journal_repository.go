package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
	"github.com/buchwerk/buchwerk/internal/models"
	"github.com/buchwerk/buchwerk/internal/utils/mapping"
	"github.com/buchwerk/buchwerk/internal/utils/pagination"
)

const entryColumns = `entry_id, company_id, entry_date, description, currency_code, status,
	contact_id, source_document_ref, locked_at, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryDate,
		&m.Description,
		&m.CurrencyCode,
		&m.Status,
		&m.ContactID,
		&m.SourceDocumentRef,
		&m.LockedAt,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
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

func insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.CompanyID,
		m.EntryDate,
		m.Description,
		m.CurrencyCode,
		m.Status,
		m.ContactID,
		m.SourceDocumentRef,
		m.LockedAt,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	return insertLinesTx(ctx, tx, entry.Lines)
}

func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, side, amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query, m.LineID, m.EntryID, m.AccountID, m.Side, m.Amount, m.Notes)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines", err)
	}
	return nil
}

// SaveEntry persists a new entry header and its lines in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateDraftEntry replaces the header fields and lines of a draft entry.
// The row is locked and the status re-checked inside the transaction, so a
// concurrent post cannot be overwritten.
func (r *PgxJournalRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.EntryStatus
	err = tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entry.EntryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock journal entry "+entry.EntryID, err)
	}
	if status != models.EntryDraft {
		return apperrors.ErrConflict
	}

	m := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, currency_code = $4, contact_id = $5,
		    source_document_ref = $6, last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.CurrencyCode,
		m.ContactID,
		m.SourceDocumentRef,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+entry.EntryID, err)
	}

	// Lines are replaced wholesale; drafts have no history worth keeping.
	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear journal lines for entry "+entry.EntryID, err)
	}
	if err := insertLinesTx(ctx, tx, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MarkEntryPosted transitions a draft to POSTED. The status guard in the
// WHERE clause makes the lock race-safe without an explicit row lock.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, lockedAt time.Time, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, locked_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, models.EntryPosted, lockedAt, now, userID, models.EntryDraft)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the entry does not exist or it is no longer a draft.
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM journal_entries WHERE entry_id = $1);`, entryID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check journal entry "+entryID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}

// SaveReversal inserts the reversal entry and cancels the original in one
// transaction. The original is locked first; if it is no longer POSTED the
// whole operation fails with ErrConflict.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.EntryStatus
	err = tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, originalEntryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock journal entry "+originalEntryID, err)
	}
	if status != models.EntryPosted {
		return apperrors.ErrConflict
	}

	if err := insertEntryTx(ctx, tx, reversal); err != nil {
		return err
	}

	cancelQuery := `
		UPDATE journal_entries
		SET status = $2, reversing_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, cancelQuery, originalEntryID, models.EntryCancelled, reversal.EntryID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel journal entry "+originalEntryID, err)
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}

	entry := mapping.ToDomainJournalEntry(*m)
	entry.Lines = lines[entryID]
	return &entry, nil
}

// ListEntriesByCompany retrieves a token-paginated page of entries, newest
// first, with their lines attached.
func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row decides whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []any{companyID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var newNextToken *string
	if len(modelEntries) == fetchLimit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
		modelEntries = modelEntries[:limit]
	}

	entryIDs := make([]string, len(modelEntries))
	for i, m := range modelEntries {
		entryIDs[i] = m.EntryID
	}
	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
		entries[i].Lines = linesByEntry[m.EntryID]
	}
	return entries, newNextToken, nil
}

func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT line_id, entry_id, account_id, side, amount, notes
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Side, &m.Amount, &m.Notes); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return result, nil
}
