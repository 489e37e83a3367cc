package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buchwerk/buchwerk/internal/apperrors"
	"github.com/buchwerk/buchwerk/internal/core/domain"
	portsrepo "github.com/buchwerk/buchwerk/internal/core/ports/repositories"
	portssvc "github.com/buchwerk/buchwerk/internal/core/ports/services"
	"github.com/buchwerk/buchwerk/internal/dto"
	"github.com/buchwerk/buchwerk/internal/logging"
	"github.com/buchwerk/buchwerk/internal/utils/validation"
)

// reversalDescriptionPrefix tags generated reversal entries.
const reversalDescriptionPrefix = "Reversal of: "

var (
	// ErrEntryUnbalanced is returned when debit and credit sums differ.
	ErrEntryUnbalanced = errors.New("journal entry does not balance")
	// ErrTooFewLines is returned for entries with fewer than two lines.
	ErrTooFewLines = errors.New("journal entry must have at least two lines")
	// ErrNonPositiveAmount is returned when any line amount is zero or negative.
	ErrNonPositiveAmount = errors.New("journal line amount must be positive")
	// ErrDanglingAccount is returned when a line references an account that
	// does not resolve in the chart.
	ErrDanglingAccount = errors.New("journal line references an unknown account")
	// ErrAlreadyLocked is returned when posting anything but a draft.
	ErrAlreadyLocked = errors.New("journal entry is already locked")
	// ErrNotPosted is returned when reversing an entry that was never posted.
	ErrNotPosted = errors.New("journal entry is not posted")
	// ErrAlreadyCancelled is returned when reversing an entry a second time.
	ErrAlreadyCancelled = errors.New("journal entry is already cancelled")
	// ErrEntryImmutable is returned for any mutation of a non-draft entry.
	ErrEntryImmutable = errors.New("posted or cancelled journal entries are immutable")
)

// journalService owns the journal entry lifecycle: draft -> posted ->
// cancelled. Posted entries are immutable; the only correction path is a
// generated reversal entry.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	chartSvc    portssvc.ChartReaderSvc
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, chartSvc portssvc.ChartReaderSvc) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		chartSvc:    chartSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// ValidateEntry enforces the double-entry invariants on a draft. It is free
// of side effects and callable any number of times before submission.
// Local invariants are checked before the chart is consulted.
func (s *journalService) ValidateEntry(ctx context.Context, companyID string, entry domain.JournalEntry) error {
	if len(entry.Lines) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewLines, len(entry.Lines))
	}

	for _, line := range entry.Lines {
		if line.Amount <= 0 {
			return fmt.Errorf("%w: account %s has amount %s", ErrNonPositiveAmount, line.AccountID, line.Amount)
		}
	}

	debit, credit := entry.DebitTotal(), entry.CreditTotal()
	if debit != credit {
		return fmt.Errorf("%w: debit %s != credit %s", ErrEntryUnbalanced, debit, credit)
	}

	accountIDs := make([]string, 0, len(entry.Lines))
	seen := make(map[string]struct{}, len(entry.Lines))
	for _, line := range entry.Lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		accountIDs = append(accountIDs, line.AccountID)
	}
	if _, err := s.chartSvc.GetAccountsByIDs(ctx, companyID, accountIDs); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrDanglingAccount, err)
		}
		return fmt.Errorf("failed to resolve line accounts: %w", err)
	}

	return nil
}

// CreateEntry persists a new draft. Drafts are not required to balance;
// the balance invariant is enforced when the draft is posted.
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	entry := domain.JournalEntry{
		EntryID:           entryID,
		CompanyID:         companyID,
		EntryDate:         req.Date,
		Description:       req.Description,
		CurrencyCode:      req.CurrencyCode,
		ContactID:         req.ContactID,
		SourceDocumentRef: req.SourceDocumentRef,
		Status:            domain.EntryDraft,
		Lines:             buildLines(entryID, req.Lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save entry draft", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry draft created", slog.String("entry_id", entry.EntryID), slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

// UpdateDraftEntry edits an entry while it is still a draft. Any attempt on
// a posted or cancelled entry fails ErrEntryImmutable.
func (s *journalService) UpdateDraftEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	entry, err := s.getCompanyEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrEntryImmutable, entryID, entry.Status)
	}

	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Lines != nil {
		entry.Lines = buildLines(entry.EntryID, *req.Lines)
	}

	now := time.Now().UTC()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateDraftEntry(ctx, *entry); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// The stored entry was locked between our read and the write.
			return nil, fmt.Errorf("%w: entry %s", ErrEntryImmutable, entryID)
		}
		logger.Error("Failed to update entry draft", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	logger.Info("Entry draft updated", slog.String("entry_id", entryID))
	return entry, nil
}

// PostEntry validates a draft and locks it. From this point the entry is
// immutable; corrections go through ReverseEntry.
func (s *journalService) PostEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	entry, err := s.getCompanyEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrAlreadyLocked, entryID, entry.Status)
	}

	// Re-checked here even if the caller validated already: the draft may
	// have changed since.
	if err := s.ValidateEntry(ctx, companyID, *entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, now, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s", ErrAlreadyLocked, entryID)
		}
		logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	entry.Status = domain.EntryPosted
	entry.LockedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	logger.Info("Entry posted", slog.String("entry_id", entryID),
		slog.String("debit_total", entry.DebitTotal().String()))
	return entry, nil
}

// ReverseEntry closes a posted entry by creating its exact mirror image
// (every side flipped) as a new, immediately posted entry and marking the
// original cancelled. The original is never edited or deleted.
func (s *journalService) ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	original, err := s.getCompanyEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	switch original.Status {
	case domain.EntryCancelled:
		return nil, fmt.Errorf("%w: entry %s", ErrAlreadyCancelled, entryID)
	case domain.EntryDraft:
		return nil, fmt.Errorf("%w: entry %s is a draft", ErrNotPosted, entryID)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrConflict, entryID)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   reversalID,
			AccountID: l.AccountID,
			Side:      l.Side.Flip(),
			Amount:    l.Amount,
			Notes:     l.Notes,
		}
	}

	reversal := domain.JournalEntry{
		EntryID:           reversalID,
		CompanyID:         companyID,
		EntryDate:         original.EntryDate,
		Description:       reversalDescriptionPrefix + original.Description,
		CurrencyCode:      original.CurrencyCode,
		ContactID:         original.ContactID,
		SourceDocumentRef: original.SourceDocumentRef,
		// Reversal entries post immediately: they exist specifically to
		// correct an immutable record.
		Status:          domain.EntryPosted,
		LockedAt:        &now,
		OriginalEntryID: &original.EntryID,
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveReversal(ctx, reversal, original.EntryID, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s", ErrAlreadyCancelled, entryID)
		}
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversalID))
	return &reversal, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	return s.getCompanyEntry(ctx, companyID, entryID)
}

func (s *journalService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}
	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// getCompanyEntry loads an entry and verifies company ownership, obscuring
// cross-company existence as not-found.
func (s *journalService) getCompanyEntry(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

func buildLines(entryID string, reqs []dto.EntryLineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqs))
	for i, lr := range reqs {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: lr.AccountID,
			Side:      domain.EntrySide(lr.Side),
			Amount:    lr.Amount,
			Notes:     lr.Notes,
		}
	}
	return lines
}
