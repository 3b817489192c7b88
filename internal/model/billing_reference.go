package model

import (
	"encoding/json"
	"strings"
	"time"
)

// BillingReference is the DatiAggiuntiviFatturazione block reused for the
// four optional document-level references (purchase order, contract,
// agreement, linked invoices). Every field is optional; string fields are
// trim-normalized so an empty-after-trim value is stored as absent.
//
// Malformed literals are rejected by the setters immediately: a negative line
// reference or a date that is not a real YYYY-MM-DD calendar date never makes
// it into the value.
type BillingReference struct {
	lineReference *int
	documentID    string
	date          string
	itemNumber    string
	projectCode   string
	cupCode       string
	cigCode       string
}

// NewBillingReference returns an empty billing reference.
func NewBillingReference() *BillingReference {
	return &BillingReference{}
}

// SetLineReference sets the referenced line number, which must be >= 0.
func (b *BillingReference) SetLineReference(n int) error {
	if n < 0 {
		return NewStructuralError("RiferimentoNumeroLinea", n, "must be >= 0", nil)
	}
	b.lineReference = &n
	return nil
}

// ClearLineReference marks the line reference as absent.
func (b *BillingReference) ClearLineReference() {
	b.lineReference = nil
}

// SetDate sets the reference date. Only real calendar dates in YYYY-MM-DD
// form are accepted; the empty string clears the field.
func (b *BillingReference) SetDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		b.date = ""
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil || t.Format("2006-01-02") != s {
		return NewStructuralError("Data", s, "must be a valid date in YYYY-MM-DD format", err)
	}
	b.date = s
	return nil
}

func (b *BillingReference) SetDocumentID(s string)  { b.documentID = normalizeString(s) }
func (b *BillingReference) SetItemNumber(s string)  { b.itemNumber = normalizeString(s) }
func (b *BillingReference) SetProjectCode(s string) { b.projectCode = normalizeString(s) }
func (b *BillingReference) SetCUPCode(s string)     { b.cupCode = normalizeString(s) }
func (b *BillingReference) SetCIGCode(s string)     { b.cigCode = normalizeString(s) }

// LineReference returns the referenced line number and whether it is set.
func (b *BillingReference) LineReference() (int, bool) {
	if b.lineReference == nil {
		return 0, false
	}
	return *b.lineReference, true
}

func (b *BillingReference) DocumentID() string  { return b.documentID }
func (b *BillingReference) Date() string        { return b.date }
func (b *BillingReference) ItemNumber() string  { return b.itemNumber }
func (b *BillingReference) ProjectCode() string { return b.projectCode }
func (b *BillingReference) CUPCode() string     { return b.cupCode }
func (b *BillingReference) CIGCode() string     { return b.cigCode }

// IsZero reports whether no field is set.
func (b *BillingReference) IsZero() bool {
	return b == nil || (b.lineReference == nil && b.documentID == "" && b.date == "" &&
		b.itemNumber == "" && b.projectCode == "" && b.cupCode == "" && b.cigCode == "")
}

type billingReferenceJSON struct {
	RiferimentoNumeroLinea    *int   `json:"RiferimentoNumeroLinea,omitempty"`
	IdDocumento               string `json:"IdDocumento,omitempty"`
	Data                      string `json:"Data,omitempty"`
	NumItem                   string `json:"NumItem,omitempty"`
	CodiceCommessaConvenzione string `json:"CodiceCommessaConvenzione,omitempty"`
	CodiceCUP                 string `json:"CodiceCUP,omitempty"`
	CodiceCIG                 string `json:"CodiceCIG,omitempty"`
}

func (b BillingReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(billingReferenceJSON{
		RiferimentoNumeroLinea:    b.lineReference,
		IdDocumento:               b.documentID,
		Data:                      b.date,
		NumItem:                   b.itemNumber,
		CodiceCommessaConvenzione: b.projectCode,
		CodiceCUP:                 b.cupCode,
		CodiceCIG:                 b.cigCode,
	})
}

// UnmarshalJSON routes every field through its setter, so malformed literals
// in the input are rejected with a StructuralError at decode time.
func (b *BillingReference) UnmarshalJSON(data []byte) error {
	var in billingReferenceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*b = BillingReference{}
	if in.RiferimentoNumeroLinea != nil {
		if err := b.SetLineReference(*in.RiferimentoNumeroLinea); err != nil {
			return err
		}
	}
	if err := b.SetDate(in.Data); err != nil {
		return err
	}
	b.SetDocumentID(in.IdDocumento)
	b.SetItemNumber(in.NumItem)
	b.SetProjectCode(in.CodiceCommessaConvenzione)
	b.SetCUPCode(in.CodiceCUP)
	b.SetCIGCode(in.CodiceCIG)
	return nil
}

// normalizeString trims and maps the empty result to absent.
func normalizeString(s string) string {
	return strings.TrimSpace(s)
}
