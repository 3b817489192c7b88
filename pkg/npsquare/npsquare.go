// Package npsquare provides the public API for the NPSquare invoicing
// platform client: build a sales document, validate it locally, submit it
// over an authenticated session and fetch reference data.
//
// Example usage:
//
//	c := npsquare.NewClient(baseURL, keyInstitution, username, password)
//	if err := c.Authenticate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close(ctx)
//
//	doc := npsquare.NewSalesDoc("invoice", "2026-08-29")
//	doc.Stakeholder = &npsquare.Stakeholder{CompanyName: "ACME srl"}
//	doc.AddProductItem(*npsquare.NewProductItem("Servizio", "22", decimal.NewFromInt(100)))
//	res, err := c.SubmitSalesDoc(ctx, doc)
package npsquare

import (
	"github.com/mambusrl/npsquare-go/internal/client"
	"github.com/mambusrl/npsquare-go/internal/model"
	"github.com/mambusrl/npsquare-go/internal/refdata"
	"github.com/mambusrl/npsquare-go/internal/validation"
)

// Re-export core document types for public API
type (
	SalesDoc         = model.SalesDoc
	ProductItem      = model.ProductItem
	Stakeholder      = model.Stakeholder
	ArticleCode      = model.ArticleCode
	ManagementData   = model.ManagementData
	Reference        = model.Reference
	RefKind          = model.RefKind
	BillingReference = model.BillingReference
	Attachment       = model.Attachment
)

// Re-export reference payload kinds
const (
	RefNone    = model.RefNone
	RefText    = model.RefText
	RefNumeric = model.RefNumeric
	RefDate    = model.RefDate
)

// Re-export constructors
var (
	NewSalesDoc          = model.NewSalesDoc
	ParseSalesDoc        = model.ParseSalesDoc
	NewProductItem       = model.NewProductItem
	NewBillingReference  = model.NewBillingReference
	NewAttachment        = model.NewAttachment
	AttachmentFromBinary = model.AttachmentFromBinary
	AttachmentFromFile   = model.AttachmentFromFile
	TextReference        = model.TextReference
	NumericReference     = model.NumericReference
	DateReference        = model.DateReference
)

// Re-export the client and its session machinery
type (
	Client         = client.Client
	Option         = client.Option
	Session        = client.Session
	State          = client.State
	SubmitResponse = client.SubmitResponse
)

const (
	StateUnauthenticated = client.StateUnauthenticated
	StateAuthenticated   = client.StateAuthenticated
	StateSubmitting      = client.StateSubmitting
	StateClosed          = client.StateClosed
)

var (
	NewClient      = client.NewClient
	WithHTTPClient = client.WithHTTPClient
	WithTimeout    = client.WithTimeout
	WithLogger     = client.WithLogger
)

// Re-export error types
type (
	StructuralError          = model.StructuralError
	AuthError                = client.AuthError
	NotFoundError            = client.NotFoundError
	NotAuthenticatedError    = client.NotAuthenticatedError
	SessionClosedError       = client.SessionClosedError
	LocalValidationError     = client.LocalValidationError
	RemoteValidationError    = client.RemoteValidationError
	UnexpectedTransportError = client.UnexpectedTransportError
)

// Re-export the violation shape and validators
type Violation = validation.Violation

var (
	CheckDocument     = validation.CheckDocument
	CheckDocumentDeep = validation.CheckDocumentDeep
	FormatViolations  = validation.Format
)

// Re-export reference-data records
type (
	PaymentMethod = refdata.PaymentMethod
	VATRate       = refdata.VATRate
	CostCenter    = refdata.CostCenter
	SubAccount    = refdata.SubAccount
	DocumentType  = refdata.DocumentType
)
