// Package validation defines the violation shape shared by local pre-flight
// checks and the platform's structured 422 responses, plus the pure functions
// producing local violations for a sales document.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mambusrl/npsquare-go/internal/model"
)

// Violation is one field-level failure. Local and remote violations use the
// same shape, so callers handle both uniformly.
type Violation struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// LocalLocation is the synthetic location segment for violations produced
// before any network call.
const LocalLocation = "local_validation"

// Violation types.
const (
	TypeValueError            = "value_error"
	TypeInvalidResponseFormat = "invalid_response_format"
)

// CheckDocument runs the document's shallow validation and wraps the result.
// It mirrors SalesDoc.Validate: nested product items and the stakeholder are
// not recursed into.
func CheckDocument(doc *model.SalesDoc) []Violation {
	return local(doc.Validate())
}

// CheckDocumentDeep validates the document and all of its children, locating
// each nested violation by its path in the serialized structure.
func CheckDocumentDeep(doc *model.SalesDoc) []Violation {
	violations := CheckDocument(doc)

	if doc.Stakeholder != nil {
		violations = append(violations, at(doc.Stakeholder.Validate(), "Stakeholder")...)
	}

	for i := range doc.ProductItems {
		item := &doc.ProductItems[i]
		idx := strconv.Itoa(i)
		violations = append(violations, at(item.Validate(), "ProductItems", idx)...)
		if item.ArticleCode != nil {
			violations = append(violations, at(item.ArticleCode.Validate(), "ProductItems", idx, "CodiceArticolo")...)
		}
		if item.ManagementData != nil {
			violations = append(violations, at(item.ManagementData.Validate(), "ProductItems", idx, "AltriDatiGestionali")...)
		}
	}

	return violations
}

// Format renders violations the way the original client printed them, one
// block per violation.
func Format(violations []Violation) string {
	var b strings.Builder
	b.WriteString("Validation Errors:\n")
	for _, v := range violations {
		fmt.Fprintf(&b, "- Field: %s\n", strings.Join(v.Loc, " -> "))
		fmt.Fprintf(&b, "  Message: %s\n", v.Msg)
		if v.Type != "" {
			fmt.Fprintf(&b, "  Type: %s\n", v.Type)
		}
	}
	return b.String()
}

func local(msgs []string) []Violation {
	return at(msgs, LocalLocation)
}

func at(msgs []string, loc ...string) []Violation {
	if len(msgs) == 0 {
		return nil
	}
	violations := make([]Violation, 0, len(msgs))
	for _, msg := range msgs {
		violations = append(violations, Violation{Loc: loc, Msg: msg, Type: TypeValueError})
	}
	return violations
}
