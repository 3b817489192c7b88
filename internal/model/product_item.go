package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mambusrl/npsquare-go/internal/money"
)

// ProductItem is one billable line of a sales document.
//
// JSON keys are the platform's PascalCase ones; the two account codes and the
// nested structures keep their Italian names because that is how the remote
// schema spells them.
type ProductItem struct {
	Quantity       int             `json:"ProductQuantity"`
	Description    string          `json:"ProductDescription"`
	UnitPrice      decimal.Decimal `json:"UnitProductPrice"`
	VATRateCode    string          `json:"ProductVatRateCode"`
	Discount       decimal.Decimal `json:"ProductDiscount"`
	SubAccountCode string          `json:"CodiceSottoconto,omitempty"`
	CostCenterCode string          `json:"CodiceCentroRicavo,omitempty"`
	EffectiveDate  string          `json:"DataCompetenza,omitempty"`
	ArticleCode    *ArticleCode    `json:"CodiceArticolo,omitempty"`
	ManagementData *ManagementData `json:"AltriDatiGestionali,omitempty"`
}

// NewProductItem builds a line with the default quantity of one and no
// discount.
func NewProductItem(description, vatRateCode string, unitPrice decimal.Decimal) *ProductItem {
	return &ProductItem{
		Quantity:    1,
		Description: description,
		UnitPrice:   unitPrice,
		VATRateCode: vatRateCode,
		Discount:    decimal.Zero,
	}
}

// UnmarshalJSON applies the decode defaults: an absent ProductQuantity means
// one, not zero.
func (p *ProductItem) UnmarshalJSON(data []byte) error {
	type alias ProductItem
	tmp := alias{Quantity: 1}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*p = ProductItem(tmp)
	return nil
}

// TotalPrice returns unit price times quantity, before discount.
func (p *ProductItem) TotalPrice() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// DiscountAmount returns the discounted share of the total price.
func (p *ProductItem) DiscountAmount() decimal.Decimal {
	if p.Discount.IsZero() {
		return decimal.Zero
	}
	return money.Percentage(p.TotalPrice(), p.Discount)
}

// NetTotal returns the total price after discount.
func (p *ProductItem) NetTotal() decimal.Decimal {
	return p.TotalPrice().Sub(p.DiscountAmount())
}

// Validate returns the business-rule violations for the line.
func (p *ProductItem) Validate() []string {
	var errs []string

	if p.Quantity <= 0 {
		errs = append(errs, "ProductQuantity must be greater than 0")
	}

	if p.Description == "" {
		errs = append(errs, "ProductDescription is required")
	}

	if p.UnitPrice.IsNegative() {
		errs = append(errs, "UnitProductPrice cannot be negative")
	}

	if p.VATRateCode == "" {
		errs = append(errs, "ProductVatRateCode is required")
	}

	if !money.IsPercent(p.Discount) {
		errs = append(errs, "ProductDiscount must be between 0 and 100")
	}

	if p.EffectiveDate != "" && !isDate(p.EffectiveDate) {
		errs = append(errs, "DataCompetenza must be in YYYY-MM-DD format")
	}

	return errs
}

// IsValid reports whether Validate returns no violations.
func (p *ProductItem) IsValid() bool {
	return len(p.Validate()) == 0
}

// isDate reports whether s is a real calendar date in YYYY-MM-DD form.
func isDate(s string) bool {
	t, err := time.Parse("2006-01-02", s)
	return err == nil && t.Format("2006-01-02") == s
}
