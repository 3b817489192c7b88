package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mambusrl/npsquare-go/pkg/npsquare"
)

var deepValidation bool

// ValidationResult is the per-file outcome of the validate command
type ValidationResult struct {
	File       string               `json:"file"`
	Valid      bool                 `json:"valid"`
	Violations []npsquare.Violation `json:"violations,omitempty"`
	Error      string               `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate sales-document files locally",
	Long: `Validate one or more sales-document JSON files without any network call.

By default validation is shallow, exactly what the platform client checks
before submitting: document type, date, at least one product item, a
stakeholder. With --deep every product line, its article code and
management data, and the stakeholder are checked too.

Examples:
  npsquare validate invoice.json
  npsquare validate invoices/*.json --deep -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&deepValidation, "deep", false, "Recurse into product items and the stakeholder")
}

func runValidate(cmd *cobra.Command, args []string) error {
	results := make([]*ValidationResult, 0, len(args))
	allValid := true

	for _, file := range args {
		result := validateFile(file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
				continue
			}
			fmt.Printf("✗ %s: INVALID\n", r.File)
			if r.Error != "" {
				fmt.Printf("  - %s\n", r.Error)
			}
			for _, v := range r.Violations {
				fmt.Printf("  - %s: %s\n", strings.Join(v.Loc, " -> "), v.Msg)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("one or more documents are invalid")
	}
	return nil
}

func validateFile(file string) *ValidationResult {
	result := &ValidationResult{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	doc, err := npsquare.ParseSalesDoc(data)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if deepValidation {
		result.Violations = npsquare.CheckDocumentDeep(doc)
	} else {
		result.Violations = npsquare.CheckDocument(doc)
	}
	result.Valid = len(result.Violations) == 0 && result.Error == ""
	return result
}
