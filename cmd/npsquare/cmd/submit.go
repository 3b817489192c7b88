package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mambusrl/npsquare-go/pkg/npsquare"
)

var submitTimeout time.Duration

var submitCmd = &cobra.Command{
	Use:   "submit [files...]",
	Short: "Submit sales-document files to the platform",
	Long: `Authenticate, submit one or more sales-document JSON files, then end
the session.

Each document is validated locally first; a document failing local
validation is reported and never sent. Validation errors returned by the
platform (422) are printed field by field.

Examples:
  npsquare submit invoice.json
  npsquare submit invoices/*.json --url https://api.example.org`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().DurationVar(&submitTimeout, "timeout", 2*time.Minute, "Overall submission timeout")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if baseURL == "" {
		return fmt.Errorf("missing base URL (--url or NPSQUARE_URL)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), submitTimeout)
	defer cancel()

	c := newClient()
	if err := c.Authenticate(ctx); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	defer func() {
		if err := c.Close(ctx); err != nil {
			logger.Warn().Err(err).Msg("logout failed")
		}
	}()

	failed := 0
	for _, file := range args {
		if err := submitFile(ctx, c, file); err != nil {
			failed++
			reportSubmitError(file, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(args))
	}
	return nil
}

func submitFile(ctx context.Context, c *npsquare.Client, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	doc, err := npsquare.ParseSalesDoc(data)
	if err != nil {
		return err
	}

	res, err := c.SubmitSalesDoc(ctx, doc)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s: submitted (id=%s)\n", file, res.ID)
	return nil
}

func reportSubmitError(file string, err error) {
	var localErr *npsquare.LocalValidationError
	var remoteErr *npsquare.RemoteValidationError

	switch {
	case errors.As(err, &localErr):
		fmt.Printf("✗ %s: rejected locally\n%s", file, localErr.Formatted())
	case errors.As(err, &remoteErr):
		fmt.Printf("✗ %s: rejected by the platform\n%s", file, remoteErr.Formatted())
	default:
		fmt.Printf("✗ %s: %v\n", file, err)
	}
}
