package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// emptyObject is what the platform expects in place of an absent
// billing-reference slot; it rejects null there.
var emptyObject = json.RawMessage("{}")

// SalesDoc is the sales-document aggregate submitted to the platform. It owns
// its product items and stakeholder; billing references and attachments are
// value data copied in.
//
// Validate is deliberately shallow: it checks the document's own fields but
// not the validity of nested product items or the stakeholder, matching the
// platform client contract. Use validation.CheckDocumentDeep for recursive
// checking.
type SalesDoc struct {
	Type            string
	TypeCode        string
	Date            string
	StampDutyAmount *decimal.Decimal
	Notes           string
	IsPaid          bool
	PaymentID       string
	PaymentMethodID *int
	ProductItems    []ProductItem
	Stakeholder     *Stakeholder
	Attachments     []Attachment

	// The four optional billing-reference slots.
	PurchaseOrder  *BillingReference // DatiOrdineAcquisto
	Contract       *BillingReference // DatiContratto
	Agreement      *BillingReference // DatiConvenzione
	LinkedInvoices *BillingReference // DatiFattureCollegate
}

// NewSalesDoc builds an empty document of the given type and date.
func NewSalesDoc(docType, date string) *SalesDoc {
	return &SalesDoc{Type: docType, Date: date}
}

// AddProductItem appends a line to the document.
func (d *SalesDoc) AddProductItem(item ProductItem) {
	d.ProductItems = append(d.ProductItems, item)
}

type salesDocJSON struct {
	Type            string           `json:"Type"`
	TypeCode        string           `json:"TypeCode,omitempty"`
	Date            string           `json:"Date"`
	StampDutyAmount *decimal.Decimal `json:"StampDutyAmount,omitempty"`
	Notes           string           `json:"Notes,omitempty"`
	IsPaid          bool             `json:"IsPaid"`
	PaymentID       string           `json:"PaymentId,omitempty"`
	PaymentMethodID *int             `json:"PaymentMethodId,omitempty"`
	ProductItems    []ProductItem    `json:"ProductItems"`
	Stakeholder     *Stakeholder     `json:"Stakeholder,omitempty"`
	Attachments     []Attachment     `json:"Attachments,omitempty"`
	PurchaseOrder   json.RawMessage  `json:"DatiOrdineAcquisto"`
	Contract        json.RawMessage  `json:"DatiContratto"`
	Agreement       json.RawMessage  `json:"DatiConvenzione"`
	LinkedInvoices  json.RawMessage  `json:"DatiFattureCollegate"`
}

func (d SalesDoc) MarshalJSON() ([]byte, error) {
	items := d.ProductItems
	if items == nil {
		items = []ProductItem{}
	}

	out := salesDocJSON{
		Type:            d.Type,
		TypeCode:        d.TypeCode,
		Date:            d.Date,
		StampDutyAmount: d.StampDutyAmount,
		Notes:           d.Notes,
		IsPaid:          d.IsPaid,
		PaymentID:       d.PaymentID,
		PaymentMethodID: d.PaymentMethodID,
		ProductItems:    items,
		Stakeholder:     d.Stakeholder,
		Attachments:     d.Attachments,
	}

	var err error
	if out.PurchaseOrder, err = marshalSlot(d.PurchaseOrder); err != nil {
		return nil, err
	}
	if out.Contract, err = marshalSlot(d.Contract); err != nil {
		return nil, err
	}
	if out.Agreement, err = marshalSlot(d.Agreement); err != nil {
		return nil, err
	}
	if out.LinkedInvoices, err = marshalSlot(d.LinkedInvoices); err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

func (d *SalesDoc) UnmarshalJSON(data []byte) error {
	var in salesDocJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*d = SalesDoc{
		Type:            in.Type,
		TypeCode:        in.TypeCode,
		Date:            in.Date,
		StampDutyAmount: in.StampDutyAmount,
		Notes:           in.Notes,
		IsPaid:          in.IsPaid,
		PaymentID:       in.PaymentID,
		PaymentMethodID: in.PaymentMethodID,
		ProductItems:    in.ProductItems,
		Stakeholder:     in.Stakeholder,
		Attachments:     in.Attachments,
	}

	var err error
	if d.PurchaseOrder, err = unmarshalSlot(in.PurchaseOrder); err != nil {
		return err
	}
	if d.Contract, err = unmarshalSlot(in.Contract); err != nil {
		return err
	}
	if d.Agreement, err = unmarshalSlot(in.Agreement); err != nil {
		return err
	}
	if d.LinkedInvoices, err = unmarshalSlot(in.LinkedInvoices); err != nil {
		return err
	}

	return nil
}

// marshalSlot renders an absent billing reference as {}, never null.
func marshalSlot(b *BillingReference) (json.RawMessage, error) {
	if b.IsZero() {
		return emptyObject, nil
	}
	return json.Marshal(b)
}

// unmarshalSlot normalizes {}, null and absent all to an absent slot.
func unmarshalSlot(raw json.RawMessage) (*BillingReference, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var b BillingReference
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	if b.IsZero() {
		return nil, nil
	}
	return &b, nil
}

// ParseSalesDoc decodes a document from its JSON form.
func ParseSalesDoc(data []byte) (*SalesDoc, error) {
	var d SalesDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ToJSON renders the document as indented JSON.
func (d *SalesDoc) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Validate returns the document-level violations. It does not recurse into
// product items or the stakeholder.
func (d *SalesDoc) Validate() []string {
	var errs []string

	if d.Type == "" {
		errs = append(errs, "Type is required")
	}

	if d.Date == "" {
		errs = append(errs, "Date is required")
	} else if !isDate(d.Date) {
		errs = append(errs, "Date must be in YYYY-MM-DD format")
	}

	if len(d.ProductItems) == 0 {
		errs = append(errs, "At least one product item is required")
	}

	if d.Stakeholder == nil {
		errs = append(errs, "Stakeholder is required")
	}

	return errs
}

// IsValid reports whether Validate returns no violations.
func (d *SalesDoc) IsValid() bool {
	return len(d.Validate()) == 0
}
