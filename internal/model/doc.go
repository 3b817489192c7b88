// Package model defines the NPSquare sales-document data model: the document
// aggregate, its value objects, their validation rules and the JSON codec
// matching the remote platform's schema.
//
// Validation is split in two layers. Structural well-formedness (canonical
// base64, real calendar dates, non-negative line references) is enforced at
// construction and decode time with StructuralError. Business completeness
// (required fields, cross-field rules) is checked on demand by the Validate
// methods, which return human-readable violation lists.
package model

import "github.com/shopspring/decimal"

func init() {
	// The platform expects monetary fields as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
