package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mambusrl/npsquare-go/internal/sandbox"
)

var (
	serveAddr       string
	serveSigningKey string
	serveTokenTTL   time.Duration
	serveDebug      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local NPSquare sandbox server",
	Long: `Run an in-process emulator of the NPSquare API for development.

The sandbox answers the same surface the client consumes:
  - POST  /token                              - bearer-token handshake
  - PATCH /logout                             - end session (204)
  - GET   /reference-data/payment-methods     - canned reference data
  - GET   /reference-data/vat-rates
  - GET   /reference-data/cost-centers
  - GET   /reference-data/sub-accounts
  - GET   /documents/types
  - POST  /documents/sales                    - deep-validated submission

Credentials come from the global --key-institution/--username/--password
flags (or their NPSQUARE_* environment variables).

Examples:
  npsquare serve --address :8080 --key-institution DEMO --username demo --password demo
  npsquare --url http://localhost:8080 submit invoice.json`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "address", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveSigningKey, "signing-key", "npsquare-sandbox", "HMAC key for issued tokens")
	serveCmd.Flags().DurationVar(&serveTokenTTL, "token-ttl", time.Hour, "Lifetime of issued tokens")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	if keyInstitution == "" || username == "" || password == "" {
		return fmt.Errorf("sandbox credentials required (--key-institution, --username, --password)")
	}

	srv := sandbox.NewServer(&sandbox.Config{
		Address:        serveAddr,
		KeyInstitution: keyInstitution,
		Username:       username,
		Password:       password,
		SigningKey:     []byte(serveSigningKey),
		TokenTTL:       serveTokenTTL,
		Debug:          serveDebug,
		Logger:         logger,
	})

	fmt.Printf("Starting sandbox on %s\n", serveAddr)
	return srv.Run()
}
