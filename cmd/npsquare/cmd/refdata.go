package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var refdataCmd = &cobra.Command{
	Use:   "refdata [payment-methods|vat-rates|cost-centers|sub-accounts|document-types]",
	Short: "List reference data from the platform",
	Long: `Fetch and list one kind of reference data from the configured
installation: payment methods, VAT rates, cost centers, sub-accounts or
document types.

Examples:
  npsquare refdata vat-rates
  npsquare refdata payment-methods -f json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"payment-methods", "vat-rates", "cost-centers", "sub-accounts", "document-types"},
	RunE:      runRefdata,
}

func init() {
	rootCmd.AddCommand(refdataCmd)
}

func runRefdata(cmd *cobra.Command, args []string) error {
	if baseURL == "" {
		return fmt.Errorf("missing base URL (--url or NPSQUARE_URL)")
	}

	ctx := cmd.Context()
	c := newClient()
	if err := c.Authenticate(ctx); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	defer func() {
		if err := c.Close(ctx); err != nil {
			logger.Warn().Err(err).Msg("logout failed")
		}
	}()

	switch args[0] {
	case "payment-methods":
		items, err := c.PaymentMethods(ctx)
		if err != nil {
			return err
		}
		return printItems(items, "ID\tDESCRIPTION\tCASH", func(w *tabwriter.Writer) {
			for _, m := range items {
				fmt.Fprintf(w, "%d\t%s\t%t\n", m.ID, m.Description, m.IsCash())
			}
		})
	case "vat-rates":
		items, err := c.VATRates(ctx)
		if err != nil {
			return err
		}
		return printItems(items, "ID\tDESCRIPTION\tRATE", func(w *tabwriter.Writer) {
			for _, r := range items {
				fmt.Fprintf(w, "%s\t%s\t%s%%\n", r.ID, r.Description, r.Rate)
			}
		})
	case "cost-centers":
		items, err := c.CostCenters(ctx)
		if err != nil {
			return err
		}
		return printItems(items, "ID\tDESCRIPTION", func(w *tabwriter.Writer) {
			for _, cc := range items {
				fmt.Fprintf(w, "%s\t%s\n", cc.ID, cc.Description)
			}
		})
	case "sub-accounts":
		items, err := c.SubAccounts(ctx)
		if err != nil {
			return err
		}
		return printItems(items, "ID\tDESCRIPTION", func(w *tabwriter.Writer) {
			for _, sa := range items {
				fmt.Fprintf(w, "%s\t%s\n", sa.ID, sa.Description)
			}
		})
	case "document-types":
		items, err := c.DocumentTypes(ctx)
		if err != nil {
			return err
		}
		return printItems(items, "ID\tTYPE\tCODE\tDESCRIPTION", func(w *tabwriter.Writer) {
			for _, dt := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", dt.ID, dt.Type, dt.TypeCode, dt.Description)
			}
		})
	default:
		return fmt.Errorf("unknown reference data kind: %s", args[0])
	}
}

// printItems renders items as JSON or as a table, per the global format flag.
func printItems[T any](items []T, header string, rows func(w *tabwriter.Writer)) error {
	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(items)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	return w.Flush()
}
