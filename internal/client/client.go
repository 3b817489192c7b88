// Package client implements the submission protocol against the NPSquare
// platform: an authenticated session, local pre-flight validation, document
// submission and reference-data retrieval, each outcome mapped to a typed
// error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mambusrl/npsquare-go/internal/model"
	"github.com/mambusrl/npsquare-go/internal/refdata"
	"github.com/mambusrl/npsquare-go/internal/validation"
)

// State is the session state of a client.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateSubmitting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateSubmitting:
		return "submitting"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session is the explicit authentication state held by a client: current
// state plus the bearer token, if any. It is plain data so tests and callers
// can inspect it.
type Session struct {
	State State
	Token string
}

// Doer is the transport capability. *http.Client satisfies it; tests swap in
// a recording fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a single logical session against one NPSquare installation. It is
// not safe for concurrent use: callers sharing a client must serialize
// Authenticate, Submit and Close externally.
type Client struct {
	baseURL        string
	keyInstitution string
	username       string
	password       string
	httpClient     Doer
	logger         zerolog.Logger
	session        Session
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom transport
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithTimeout sets the timeout of the default transport
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates an unauthenticated client for the given installation.
func NewClient(baseURL, keyInstitution, username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		keyInstitution: keyInstitution,
		username:       username,
		password:       password,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Session returns a copy of the current session state.
func (c *Client) Session() Session {
	return c.session
}

// SubmitResponse is the success payload of a document submission.
type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

// Authenticate exchanges the configured credentials for a bearer token. On
// failure the session stays unauthenticated.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.session.State == StateClosed {
		return &SessionClosedError{}
	}
	if c.keyInstitution == "" {
		return fmt.Errorf("missing key institution")
	}

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)
	form.Set("client_id", c.keyInstitution)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	code, body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("token request: %w", err)
	}

	switch code {
	case http.StatusOK:
		var payload struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(body, &payload); err != nil || payload.AccessToken == "" {
			return &UnexpectedTransportError{Code: code, Body: string(body)}
		}
		c.session = Session{State: StateAuthenticated, Token: payload.AccessToken}
		c.logger.Debug().Str("op", "authenticate").Msg("session authenticated")
		return nil
	case http.StatusUnauthorized:
		return &AuthError{Operation: "authenticate", Code: code}
	default:
		return &UnexpectedTransportError{Code: code, Body: string(body)}
	}
}

// SubmitSalesDoc validates the document locally and, only if it passes,
// submits it to the platform. Any local violation short-circuits with
// LocalValidationError and no network call.
func (c *Client) SubmitSalesDoc(ctx context.Context, doc *model.SalesDoc) (*SubmitResponse, error) {
	if c.session.State == StateClosed {
		return nil, &SessionClosedError{}
	}
	if c.session.State != StateAuthenticated {
		return nil, &NotAuthenticatedError{}
	}

	if violations := validation.CheckDocument(doc); len(violations) > 0 {
		return nil, &LocalValidationError{Violations: violations}
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	c.session.State = StateSubmitting
	defer func() {
		if c.session.State == StateSubmitting {
			c.session.State = StateAuthenticated
		}
	}()

	endpoint := c.baseURL + "/documents/sales?keyInstitution=" + url.QueryEscape(c.keyInstitution)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	code, body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}

	switch code {
	case http.StatusOK, http.StatusCreated:
		var result SubmitResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("decode submit response: %w", err)
		}
		c.logger.Debug().Str("op", "submit").Str("id", result.ID).Msg("document accepted")
		return &result, nil
	case http.StatusUnauthorized:
		return nil, &AuthError{Operation: "submit", Code: code}
	case http.StatusNotFound:
		return nil, &NotFoundError{Resource: "documents/sales"}
	case http.StatusUnprocessableEntity:
		return nil, &RemoteValidationError{
			Violations: parseRemoteViolations(body),
			RawBody:    string(body),
		}
	default:
		return nil, &UnexpectedTransportError{Code: code, Body: string(body)}
	}
}

// Close ends the session with a logout call. A closed session is terminal.
func (c *Client) Close(ctx context.Context) error {
	if c.session.State == StateClosed {
		return &SessionClosedError{}
	}
	if c.session.State != StateAuthenticated {
		return &NotAuthenticatedError{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("create logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	code, body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	switch code {
	case http.StatusNoContent:
		c.session = Session{State: StateClosed}
		c.logger.Debug().Str("op", "close").Msg("session closed")
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Operation: "logout", Code: code}
	default:
		return &UnexpectedTransportError{Code: code, Body: string(body)}
	}
}

// PaymentMethods fetches the installation's payment methods.
func (c *Client) PaymentMethods(ctx context.Context) ([]refdata.PaymentMethod, error) {
	return fetchReferenceItems[refdata.PaymentMethod](ctx, c, "/reference-data/payment-methods")
}

// VATRates fetches the installation's VAT rates.
func (c *Client) VATRates(ctx context.Context) ([]refdata.VATRate, error) {
	return fetchReferenceItems[refdata.VATRate](ctx, c, "/reference-data/vat-rates")
}

// CostCenters fetches the installation's cost centers.
func (c *Client) CostCenters(ctx context.Context) ([]refdata.CostCenter, error) {
	return fetchReferenceItems[refdata.CostCenter](ctx, c, "/reference-data/cost-centers")
}

// SubAccounts fetches the installation's sub-accounts.
func (c *Client) SubAccounts(ctx context.Context) ([]refdata.SubAccount, error) {
	return fetchReferenceItems[refdata.SubAccount](ctx, c, "/reference-data/sub-accounts")
}

// DocumentTypes fetches the document types accepted by the installation.
func (c *Client) DocumentTypes(ctx context.Context) ([]refdata.DocumentType, error) {
	return fetchReferenceItems[refdata.DocumentType](ctx, c, "/documents/types")
}

// fetchReferenceItems retrieves one page of a reference-data listing,
// decoding the {items: [...]} envelope.
func fetchReferenceItems[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	if c.session.State == StateClosed {
		return nil, &SessionClosedError{}
	}
	if c.session.State != StateAuthenticated {
		return nil, &NotAuthenticatedError{}
	}

	endpoint := fmt.Sprintf("%s%s?keyInstitution=%s&page=1&size=100", c.baseURL, path, url.QueryEscape(c.keyInstitution))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token)

	code, body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", path, err)
	}

	switch code {
	case http.StatusOK:
		var page struct {
			Items []T `json:"items"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", path, err)
		}
		return page.Items, nil
	case http.StatusUnauthorized:
		return nil, &AuthError{Operation: path, Code: code}
	default:
		return nil, &UnexpectedTransportError{Code: code, Body: string(body)}
	}
}

// do executes the request and drains the body.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// parseRemoteViolations maps a 422 body's detail array into the shared
// violation shape. Numeric location segments (array indexes) become their
// decimal string form. A missing or malformed body collapses to a single
// violation carrying the raw body.
func parseRemoteViolations(body []byte) []validation.Violation {
	var payload struct {
		Detail []struct {
			Loc  []interface{} `json:"loc"`
			Msg  string        `json:"msg"`
			Type string        `json:"type"`
		} `json:"detail"`
	}

	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return []validation.Violation{{
			Msg:  string(body),
			Type: validation.TypeInvalidResponseFormat,
		}}
	}

	violations := make([]validation.Violation, 0, len(payload.Detail))
	for _, d := range payload.Detail {
		loc := make([]string, 0, len(d.Loc))
		for _, seg := range d.Loc {
			switch v := seg.(type) {
			case string:
				loc = append(loc, v)
			case float64:
				loc = append(loc, strconv.FormatFloat(v, 'f', -1, 64))
			default:
				loc = append(loc, fmt.Sprint(v))
			}
		}
		violations = append(violations, validation.Violation{Loc: loc, Msg: d.Msg, Type: d.Type})
	}
	return violations
}
