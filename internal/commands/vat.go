package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/buchwerk/buchwerk/internal/core/domain"
	"github.com/buchwerk/buchwerk/internal/utils/vat"
)

// newVatCommand splits a gross amount into net and tax. Works offline; no
// database connection needed.
func newVatCommand() *cobra.Command {
	var grossStr string
	var rateStr string

	cmd := &cobra.Command{
		Use:   "vat",
		Short: "Split a gross amount into net and VAT",
		RunE: func(cmd *cobra.Command, args []string) error {
			grossDec, err := decimal.NewFromString(grossStr)
			if err != nil {
				return fmt.Errorf("invalid gross amount %q: %w", grossStr, err)
			}
			gross, err := domain.MoneyFromDecimal(grossDec)
			if err != nil {
				return err
			}
			rate, err := decimal.NewFromString(rateStr)
			if err != nil {
				return fmt.Errorf("invalid vat rate %q: %w", rateStr, err)
			}

			breakdown, err := vat.ComputeVat(gross, rate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gross: %s\n", breakdown.Gross)
			fmt.Fprintf(out, "net:   %s\n", breakdown.Net)
			fmt.Fprintf(out, "tax:   %s\n", breakdown.Tax)
			return nil
		},
	}

	cmd.Flags().StringVar(&grossStr, "gross", "", "gross amount in major units, e.g. 119.00 (required)")
	_ = cmd.MarkFlagRequired("gross")
	cmd.Flags().StringVar(&rateStr, "rate", "19", "VAT rate percent")

	return cmd
}
