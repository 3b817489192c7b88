package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RefKind identifies which payload a management-data reference carries. The
// values match the tags the platform uses for the three reference columns.
type RefKind string

const (
	RefNone    RefKind = ""
	RefText    RefKind = "testo"
	RefNumeric RefKind = "numero"
	RefDate    RefKind = "data"
)

// refDateLayouts are the date shapes accepted for a date reference. A value
// is valid only if it re-formats byte-for-byte through its matching layout.
var refDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

// Reference is the payload of a management-data entry: text, numeric or date,
// never more than one. The zero value is the absent reference.
type Reference struct {
	kind   RefKind
	text   string
	number decimal.Decimal
	date   string
}

// TextReference builds a text payload.
func TextReference(s string) Reference {
	return Reference{kind: RefText, text: s}
}

// NumericReference builds a numeric payload.
func NumericReference(d decimal.Decimal) Reference {
	return Reference{kind: RefNumeric, number: d}
}

// DateReference builds a date payload. Format validity is a business rule
// checked by ManagementData.Validate, not here.
func DateReference(s string) Reference {
	return Reference{kind: RefDate, date: s}
}

// Kind returns which payload is set, RefNone for the absent reference.
func (r Reference) Kind() RefKind { return r.kind }

// Text returns the text payload and whether it is the one set.
func (r Reference) Text() (string, bool) { return r.text, r.kind == RefText }

// Number returns the numeric payload and whether it is the one set.
func (r Reference) Number() (decimal.Decimal, bool) { return r.number, r.kind == RefNumeric }

// Date returns the date payload and whether it is the one set.
func (r Reference) Date() (string, bool) { return r.date, r.kind == RefDate }

// Value returns whichever payload is set, nil when absent.
func (r Reference) Value() interface{} {
	switch r.kind {
	case RefText:
		return r.text
	case RefNumeric:
		return r.number
	case RefDate:
		return r.date
	}
	return nil
}

// IsZero reports whether no payload is set.
func (r Reference) IsZero() bool { return r.kind == RefNone }

// ManagementData is the AltriDatiGestionali extension of a product item: a
// required type tag plus at most one reference payload.
type ManagementData struct {
	DataType  string
	Reference Reference
}

type managementDataJSON struct {
	TipoDato          string           `json:"TipoDato"`
	RiferimentoTesto  *string          `json:"RiferimentoTesto,omitempty"`
	RiferimentoNumero *decimal.Decimal `json:"RiferimentoNumero,omitempty"`
	RiferimentoData   *string          `json:"RiferimentoData,omitempty"`
}

func (m ManagementData) MarshalJSON() ([]byte, error) {
	out := managementDataJSON{TipoDato: m.DataType}
	switch m.Reference.kind {
	case RefText:
		out.RiferimentoTesto = &m.Reference.text
	case RefNumeric:
		out.RiferimentoNumero = &m.Reference.number
	case RefDate:
		out.RiferimentoData = &m.Reference.date
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire shape, which permits all three reference
// columns at once. Only the highest-priority populated one survives, in the
// order text, numeric, date.
func (m *ManagementData) UnmarshalJSON(data []byte) error {
	var in managementDataJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	m.DataType = in.TipoDato
	switch {
	case in.RiferimentoTesto != nil:
		m.Reference = TextReference(*in.RiferimentoTesto)
	case in.RiferimentoNumero != nil:
		m.Reference = NumericReference(*in.RiferimentoNumero)
	case in.RiferimentoData != nil:
		m.Reference = DateReference(*in.RiferimentoData)
	default:
		m.Reference = Reference{}
	}
	return nil
}

// Validate returns the business-rule violations for the extension.
func (m *ManagementData) Validate() []string {
	var errs []string

	if m.DataType == "" {
		errs = append(errs, "TipoDato is required")
	}

	if date, ok := m.Reference.Date(); ok && !isRefDate(date) {
		errs = append(errs, "RiferimentoData must be a valid date (YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, DD/MM/YYYY or DD-MM-YYYY)")
	}

	return errs
}

// IsValid reports whether Validate returns no violations.
func (m *ManagementData) IsValid() bool {
	return len(m.Validate()) == 0
}

func isRefDate(s string) bool {
	for _, layout := range refDateLayouts {
		if t, err := time.Parse(layout, s); err == nil && t.Format(layout) == s {
			return true
		}
	}
	return false
}
