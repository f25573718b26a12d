package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
	portsrepo "github.com/SscSPs/kz_bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kz_bookkeeping/internal/core/ports/services"
)

const (
	defaultEntryPageSize = 20
	maxEntryPageSize     = 100
)

// accountMappingSource supplies tenant account mappings merged with defaults.
type accountMappingSource interface {
	GetAccountMappings(ctx context.Context, tenantID string) (map[string]string, error)
}

type journalService struct {
	BaseService
	journalRepo     portsrepo.JournalRepositoryFacade
	chart           portssvc.AccountResolverSvc
	periods         portssvc.PeriodGateSvc
	invoices        portsrepo.InvoiceReader
	mappings        accountMappingSource
	otherIncomeCode string
	now             func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithInvoiceReader enables income postings linked to invoices.
func WithInvoiceReader(reader portsrepo.InvoiceReader) JournalServiceOption {
	return func(s *journalService) {
		s.invoices = reader
	}
}

// WithAccountMappings makes income without a counter account use the tenant's other_income mapping.
func WithAccountMappings(source accountMappingSource) JournalServiceOption {
	return func(s *journalService) {
		s.mappings = source
	}
}

// WithDefaultOtherIncomeCode sets the chart code used when no mapping source is configured.
func WithDefaultOtherIncomeCode(code string) JournalServiceOption {
	return func(s *journalService) {
		if code != "" {
			s.otherIncomeCode = code
		}
	}
}

// WithJournalClock overrides the clock used for audit fields.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates the journal engine.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, chart portssvc.AccountResolverSvc, periods portssvc.PeriodGateSvc, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo:     journalRepo,
		chart:           chart,
		periods:         periods,
		otherIncomeCode: domain.CodeOtherIncome,
		now:             func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostTransaction turns a cash transaction into a two-line entry and posts it.
func (s *journalService) PostTransaction(ctx context.Context, intent domain.TransactionIntent) (*domain.JournalEntry, error) {
	if err := s.validateIntent(intent); err != nil {
		return nil, err
	}

	periodID, err := s.periods.ValidateForPosting(ctx, intent.TenantID, intent.Date)
	if err != nil {
		return nil, err
	}

	var debitID, creditID string
	switch intent.Type {
	case domain.TransactionIncome:
		debitID = intent.PrimaryAccountID
		creditID, err = s.revenueAccountFor(ctx, intent)
		if err != nil {
			return nil, err
		}
	case domain.TransactionExpense, domain.TransactionTransfer:
		debitID = *intent.CounterAccountID
		creditID = intent.PrimaryAccountID
	}

	accounts, err := s.resolvePostable(ctx, intent.TenantID, []string{debitID, creditID})
	if err != nil {
		return nil, err
	}
	if accounts[intent.PrimaryAccountID].Class != domain.Asset {
		return nil, fmt.Errorf("%w: primary account %s must be a cash or bank account", apperrors.ErrValidation, accounts[intent.PrimaryAccountID].Code)
	}
	if err := checkCategoryClass(intent.Type, accounts[debitID], accounts[creditID]); err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		domain.DebitLine(debitID, intent.Amount, ""),
		domain.CreditLine(creditID, intent.Amount, ""),
	}
	if err := domain.ValidateLines(lines); err != nil {
		return nil, err
	}

	entry := s.newEntry(intent.TenantID, periodID, intent.Date, domain.EntryPosted, domain.SourceTransaction, intent.Description, intent.ActorID)
	entry.InvoiceID = intent.InvoiceID
	return s.save(ctx, entry, lines)
}

func (s *journalService) validateIntent(intent domain.TransactionIntent) error {
	if err := validateStruct(intent); err != nil {
		return err
	}
	if !intent.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	switch intent.Type {
	case domain.TransactionExpense:
		if intent.CounterAccountID == nil {
			return fmt.Errorf("%w: expense requires a counter account", apperrors.ErrValidation)
		}
	case domain.TransactionTransfer:
		if intent.CounterAccountID == nil {
			return fmt.Errorf("%w: transfer requires a destination account", apperrors.ErrValidation)
		}
		if *intent.CounterAccountID == intent.PrimaryAccountID {
			return fmt.Errorf("%w: transfer source and destination must differ", apperrors.ErrValidation)
		}
	}
	if intent.InvoiceID != nil && intent.Type != domain.TransactionIncome {
		return fmt.Errorf("%w: only income can reference an invoice", apperrors.ErrValidation)
	}
	return nil
}

// checkCategoryClass makes sure income lands on a revenue account and an
// expense on an expense account. Transfers carry no category.
func checkCategoryClass(txType domain.TransactionType, debit, credit domain.Account) error {
	switch txType {
	case domain.TransactionIncome:
		if credit.Class != domain.Revenue {
			return fmt.Errorf("%w: income must credit a revenue account, %s is %s", apperrors.ErrValidation, credit.Code, credit.Class)
		}
	case domain.TransactionExpense:
		if debit.Class != domain.Expense {
			return fmt.Errorf("%w: expense must debit an expense account, %s is %s", apperrors.ErrValidation, debit.Code, debit.Class)
		}
	}
	return nil
}

// revenueAccountFor picks the credited revenue account: the invoice's revenue
// mapping, else the explicit counter account, else the other income account.
func (s *journalService) revenueAccountFor(ctx context.Context, intent domain.TransactionIntent) (string, error) {
	if intent.InvoiceID != nil {
		if s.invoices == nil {
			return "", fmt.Errorf("%w: invoices are not available", apperrors.ErrValidation)
		}
		accountID, err := s.invoices.FindInvoiceRevenueAccount(ctx, intent.TenantID, *intent.InvoiceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: invoice %s not found", apperrors.ErrValidation, *intent.InvoiceID)
			}
			return "", fmt.Errorf("failed to read invoice: %w", err)
		}
		if accountID == "" {
			return "", apperrors.NewConfigurationError(intent.TenantID, "invoice "+*intent.InvoiceID+" revenue account")
		}
		return accountID, nil
	}

	if intent.CounterAccountID != nil {
		return *intent.CounterAccountID, nil
	}

	if s.mappings != nil {
		mappings, err := s.mappings.GetAccountMappings(ctx, intent.TenantID)
		if err != nil {
			return "", err
		}
		if id := mappings[domain.MappingOtherIncome]; id != "" {
			return id, nil
		}
		return "", apperrors.NewConfigurationError(intent.TenantID, domain.MappingOtherIncome)
	}

	acc, err := s.chart.Resolve(ctx, intent.TenantID, s.otherIncomeCode)
	if err != nil {
		return "", err
	}
	return acc.AccountID, nil
}

// resolvePostable loads every account and rejects headers and inactive accounts.
func (s *journalService) resolvePostable(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.chart.ResolveMany(ctx, tenantID, uniqueStrings(accountIDs))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		return nil, err
	}
	for _, id := range accountIDs {
		if acc := accounts[id]; !acc.IsPostable() {
			return nil, fmt.Errorf("%w: account %s (%s) does not accept postings", apperrors.ErrValidation, acc.Code, acc.Name)
		}
	}
	return accounts, nil
}

func (s *journalService) newEntry(tenantID, periodID string, date time.Time, status domain.EntryStatus, source domain.EntrySource, description, actorID string) domain.JournalEntry {
	now := s.now()
	return domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    tenantID,
		PeriodID:    periodID,
		EntryDate:   domain.DateOnly(date),
		Status:      status,
		Source:      source,
		Description: description,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
}

// stampLines gives each line an ID and links it to the entry.
func stampLines(entryID string, lines []domain.JournalLine) []domain.JournalLine {
	stamped := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		l.LineID = uuid.NewString()
		l.EntryID = entryID
		stamped[i] = l
	}
	return stamped
}

func (s *journalService) save(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	lines = stampLines(entry.EntryID, lines)
	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("tenant_id", entry.TenantID),
			slog.String("period_id", entry.PeriodID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	entry.Lines = lines
	s.LogInfo(ctx, "Journal entry saved",
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)),
		slog.String("source", string(entry.Source)),
		slog.Int("line_count", len(lines)))
	return &entry, nil
}

func (s *journalService) PostManualEntry(ctx context.Context, req domain.ManualEntryRequest) (*domain.JournalEntry, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := domain.ValidateLines(req.Lines); err != nil {
		return nil, err
	}

	periodID, err := s.periods.ValidateForPosting(ctx, req.TenantID, req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolvePostable(ctx, req.TenantID, lineAccountIDs(req.Lines)); err != nil {
		return nil, err
	}

	status := domain.EntryPosted
	if req.Draft {
		status = domain.EntryDraft
	}
	entry := s.newEntry(req.TenantID, periodID, req.Date, status, domain.SourceManual, req.Description, req.ActorID)
	return s.save(ctx, entry, req.Lines)
}

func (s *journalService) PostDraftEntry(ctx context.Context, tenantID, entryID, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s, not DRAFT", apperrors.ErrConflict, entryID, entry.Status)
	}
	if err := domain.ValidateLines(entry.Lines); err != nil {
		return nil, err
	}

	periodID, err := s.periods.ValidateForPosting(ctx, tenantID, entry.EntryDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolvePostable(ctx, tenantID, lineAccountIDs(entry.Lines)); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.journalRepo.PostDraft(ctx, tenantID, entryID, periodID, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to post draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post draft entry: %w", err)
	}

	entry.Status = domain.EntryPosted
	entry.PeriodID = periodID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID
	s.LogInfo(ctx, "Draft entry posted", slog.String("entry_id", entryID))
	return entry, nil
}

// ReverseEntry posts the mirror image of a posted entry. A zero date reverses
// on the original entry date.
func (s *journalService) ReverseEntry(ctx context.Context, tenantID, entryID string, date time.Time, actorID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Source == domain.SourceReversal || original.OriginalEntryID != nil {
		return nil, fmt.Errorf("%w: a reversal cannot be reversed", apperrors.ErrConflict)
	}
	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: entry %s is %s, only POSTED entries can be reversed", apperrors.ErrConflict, entryID, original.Status)
	}
	if date.IsZero() {
		date = original.EntryDate
	}

	periodID, err := s.periods.ValidateForPosting(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.JournalLine{AccountID: l.AccountID, Debit: l.Credit, Credit: l.Debit, Notes: l.Notes}
	}
	if err := domain.ValidateLines(lines); err != nil {
		return nil, err
	}

	reversal := s.newEntry(tenantID, periodID, date, domain.EntryPosted, domain.SourceReversal, "Reversal of "+original.Description, actorID)
	reversal.OriginalEntryID = &original.EntryID
	lines = stampLines(reversal.EntryID, lines)

	if err := s.journalRepo.SaveReversal(ctx, reversal, lines); err != nil {
		s.LogError(ctx, err, "Failed to save reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}
	reversal.Lines = lines

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_id", reversal.EntryID))
	return &reversal, nil
}

func (s *journalService) PostLines(ctx context.Context, batch domain.LineBatch) (*domain.JournalEntry, error) {
	if batch.TenantID == "" || batch.Date.IsZero() {
		return nil, fmt.Errorf("%w: tenant and date are required", apperrors.ErrValidation)
	}
	if batch.Source == "" {
		batch.Source = domain.SourceManual
	}
	if err := domain.ValidateLines(batch.Lines); err != nil {
		return nil, err
	}

	periodID, err := s.periods.ValidateForPosting(ctx, batch.TenantID, batch.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolvePostable(ctx, batch.TenantID, lineAccountIDs(batch.Lines)); err != nil {
		return nil, err
	}

	entry := s.newEntry(batch.TenantID, periodID, batch.Date, domain.EntryPosted, batch.Source, batch.Description, batch.ActorID)
	return s.save(ctx, entry, batch.Lines)
}

func (s *journalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
}

func (s *journalService) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, nil, fmt.Errorf("%w: from is after to", apperrors.ErrValidation)
	}
	return s.journalRepo.ListEntries(ctx, tenantID, filter, limit, nextToken)
}

func lineAccountIDs(lines []domain.JournalLine) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.AccountID)
	}
	return ids
}

func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, s := range input {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}
