// Package refdata holds the flat read-only records served by the platform's
// reference-data endpoints. They carry no validation logic; documents consume
// them as plain values.
package refdata

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod is one entry of /reference-data/payment-methods.
type PaymentMethod struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// IsCash reports whether the method is a cash payment.
func (p PaymentMethod) IsCash() bool {
	return strings.Contains(strings.ToUpper(p.Description), "CONTANTI")
}

func (p PaymentMethod) String() string {
	return fmt.Sprintf("%s (ID: %d)", p.Description, p.ID)
}

// VATRate is one entry of /reference-data/vat-rates.
type VATRate struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
}

// CostCenter is one entry of /reference-data/cost-centers.
type CostCenter struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// SubAccount is one entry of /reference-data/sub-accounts.
type SubAccount struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// DocumentType is one entry of /documents/types; Type and TypeCode are the
// values a SalesDoc carries in its Type and TypeCode fields.
type DocumentType struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	TypeCode    string `json:"type_code"`
	Description string `json:"description"`
}
