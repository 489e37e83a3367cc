package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/core/ports/services"
	"github.com/buchwerk/buchwerk/internal/dto"
	"github.com/buchwerk/buchwerk/internal/logging"
	"github.com/buchwerk/buchwerk/internal/platform/config"
)

// newQuickEntryCommand records a simple business transaction as a draft
// journal entry without manual debit/credit line entry.
func newQuickEntryCommand() *cobra.Command {
	var (
		companyID        string
		userID           string
		date             string
		description      string
		currencyCode     string
		contactID        string
		contraAccountID  string
		vatRateStr       string
		grossStr         string
		isPaid           bool
		paymentAccountID string
	)

	cmd := &cobra.Command{
		Use:   "quick-entry",
		Short: "Record a transaction as a draft journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			entryDate, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
			}
			grossDec, err := decimal.NewFromString(grossStr)
			if err != nil {
				return fmt.Errorf("invalid gross amount %q: %w", grossStr, err)
			}
			gross, err := domain.MoneyFromDecimal(grossDec)
			if err != nil {
				return err
			}
			vatRate, err := decimal.NewFromString(vatRateStr)
			if err != nil {
				return fmt.Errorf("invalid vat rate %q: %w", vatRateStr, err)
			}

			req := dto.QuickEntryRequest{
				Date:            entryDate,
				Description:     description,
				CurrencyCode:    currencyCode,
				ContactID:       contactID,
				ContraAccountID: contraAccountID,
				VatRatePercent:  vatRate,
				GrossAmount:     gross,
				IsPaid:          isPaid,
			}
			if paymentAccountID != "" {
				req.PaymentAccountID = &paymentAccountID
			}

			return withServices(cmd.Context(), func(ctx context.Context, _ *config.Config, svc *services.ServiceContainer) error {
				ctx = logging.NewOperationContext(ctx, slog.Default(), "cli.quick-entry")
				entry, err := svc.QuickEntry.GenerateEntry(ctx, companyID, req, userID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "draft entry %s created with %d lines\n", entry.EntryID, len(entry.Lines))
				for _, line := range entry.Lines {
					fmt.Fprintf(out, "  %-6s %s  %s\n", line.Side, line.AccountID, line.Amount)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company ID (required)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().StringVar(&userID, "user", "", "acting user ID (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "entry date")
	cmd.Flags().StringVar(&description, "description", "", "entry description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&currencyCode, "currency", "EUR", "ISO 4217 currency code")
	cmd.Flags().StringVar(&contactID, "contact", "", "contact ID (required)")
	_ = cmd.MarkFlagRequired("contact")
	cmd.Flags().StringVar(&contraAccountID, "contra-account", "", "revenue or expense account ID (required)")
	_ = cmd.MarkFlagRequired("contra-account")
	cmd.Flags().StringVar(&vatRateStr, "vat-rate", "19", "VAT rate percent")
	cmd.Flags().StringVar(&grossStr, "gross", "", "gross amount in major units (required)")
	_ = cmd.MarkFlagRequired("gross")
	cmd.Flags().BoolVar(&isPaid, "paid", false, "transaction already paid")
	cmd.Flags().StringVar(&paymentAccountID, "payment-account", "", "bank/cash account ID, required with --paid")

	return cmd
}
