package sandbox

import (
	"github.com/shopspring/decimal"

	"github.com/mambusrl/npsquare-go/internal/refdata"
)

// Canned reference data served by every sandbox installation.
var (
	defaultPaymentMethods = []refdata.PaymentMethod{
		{ID: 1, Description: "CONTANTI"},
		{ID: 2, Description: "BONIFICO BANCARIO"},
		{ID: 3, Description: "CARTA DI CREDITO"},
	}

	defaultVATRates = []refdata.VATRate{
		{ID: "22", Description: "Aliquota ordinaria 22%", Rate: decimal.NewFromInt(22)},
		{ID: "10", Description: "Aliquota ridotta 10%", Rate: decimal.NewFromInt(10)},
		{ID: "4", Description: "Aliquota super ridotta 4%", Rate: decimal.NewFromInt(4)},
		{ID: "N4", Description: "Esente art. 10", Rate: decimal.Zero},
	}

	defaultCostCenters = []refdata.CostCenter{
		{ID: "CC01", Description: "Sede centrale"},
		{ID: "CC02", Description: "Raccolta fondi"},
	}

	defaultSubAccounts = []refdata.SubAccount{
		{ID: "5801", Description: "Ricavi da erogazioni liberali"},
		{ID: "5802", Description: "Ricavi da attività commerciale"},
	}

	defaultDocumentTypes = []refdata.DocumentType{
		{ID: 1, Type: "invoice", TypeCode: "TD01", Description: "Fattura"},
		{ID: 2, Type: "credit_note", TypeCode: "TD04", Description: "Nota di credito"},
		{ID: 3, Type: "receipt", TypeCode: "TD24", Description: "Ricevuta"},
	}
)
