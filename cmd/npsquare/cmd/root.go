package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mambusrl/npsquare-go/pkg/npsquare"
)

var (
	version = "1.0.0"

	// Global flags
	verbose        bool
	outputFormat   string
	baseURL        string
	keyInstitution string
	username       string
	password       string

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "npsquare",
	Short: "Submit sales documents to the NPSquare invoicing platform",
	Long: `npsquare is a CLI for the NPSquare invoicing platform.

It validates sales-document JSON files locally, submits them over an
authenticated session, and lists the reference data (payment methods,
VAT rates, cost centers, sub-accounts, document types) used to fill
documents in.

Examples:
  # Validate a document file locally
  npsquare validate invoice.json

  # Validate recursively, including every product line
  npsquare validate invoice.json --deep

  # Submit documents
  npsquare submit invoice.json --url https://api.example.org --key-institution KEY

  # List the installation's VAT rates
  npsquare refdata vat-rates`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "NPSquare base URL (env: NPSQUARE_URL)")
	rootCmd.PersistentFlags().StringVar(&keyInstitution, "key-institution", "", "Institution key (env: NPSQUARE_KEY_INSTITUTION)")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "API username (env: NPSQUARE_USERNAME)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "API password (env: NPSQUARE_PASSWORD)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if baseURL == "" {
		baseURL = os.Getenv("NPSQUARE_URL")
	}
	if keyInstitution == "" {
		keyInstitution = os.Getenv("NPSQUARE_KEY_INSTITUTION")
	}
	if username == "" {
		username = os.Getenv("NPSQUARE_USERNAME")
	}
	if password == "" {
		password = os.Getenv("NPSQUARE_PASSWORD")
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

// newClient builds a client from the global flags.
func newClient() *npsquare.Client {
	return npsquare.NewClient(baseURL, keyInstitution, username, password,
		npsquare.WithLogger(logger))
}
