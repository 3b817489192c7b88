package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mambusrl/npsquare-go/internal/client"
	"github.com/mambusrl/npsquare-go/internal/model"
	"github.com/mambusrl/npsquare-go/internal/validation"
)

// fakeDoer replays scripted responses and records every request it sees.
type fakeDoer struct {
	responses []*http.Response
	requests  []*http.Request
	bodies    []string
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	body := ""
	if req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		body = string(raw)
	}
	f.bodies = append(f.bodies, body)

	if len(f.responses) == 0 {
		return nil, errors.New("no scripted response left")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeDoer) respond(code int, body string) {
	f.responses = append(f.responses, &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
	})
}

func authenticated(t *testing.T, doer *fakeDoer) *client.Client {
	t.Helper()
	doer.respond(http.StatusOK, `{"access_token":"tok-123"}`)
	c := client.NewClient("https://api.example.test/", "inst-1", "mario", "segreto",
		client.WithHTTPClient(doer))
	require.NoError(t, c.Authenticate(context.Background()))
	return c
}

func validDoc() *model.SalesDoc {
	doc := model.NewSalesDoc("invoice", "2026-08-29")
	doc.Stakeholder = &model.Stakeholder{CompanyName: "ACME srl"}
	doc.AddProductItem(*model.NewProductItem("Servizio di consulenza", "22", decimal.NewFromInt(100)))
	return doc
}

func TestAuthenticate(t *testing.T) {
	doer := &fakeDoer{}
	doer.respond(http.StatusOK, `{"access_token":"tok-123"}`)

	c := client.NewClient("https://api.example.test/", "inst-1", "mario", "segreto",
		client.WithHTTPClient(doer))
	assert.Equal(t, client.StateUnauthenticated, c.Session().State)

	require.NoError(t, c.Authenticate(context.Background()))
	assert.Equal(t, client.Session{State: client.StateAuthenticated, Token: "tok-123"}, c.Session())

	req := doer.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://api.example.test/token", req.URL.String())
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	assert.Contains(t, doer.bodies[0], "username=mario")
	assert.Contains(t, doer.bodies[0], "client_id=inst-1")
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	doer := &fakeDoer{}
	doer.respond(http.StatusUnauthorized, `{"detail":"invalid credentials"}`)

	c := client.NewClient("https://api.example.test", "inst-1", "mario", "sbagliata",
		client.WithHTTPClient(doer))
	err := c.Authenticate(context.Background())

	var authErr *client.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "authenticate", authErr.Operation)
	assert.Equal(t, client.StateUnauthenticated, c.Session().State)
}

func TestAuthenticate_MissingKeyInstitution(t *testing.T) {
	doer := &fakeDoer{}
	c := client.NewClient("https://api.example.test", "", "mario", "segreto",
		client.WithHTTPClient(doer))

	require.Error(t, c.Authenticate(context.Background()))
	assert.Empty(t, doer.requests)
}

func TestSubmit_RequiresAuthentication(t *testing.T) {
	doer := &fakeDoer{}
	c := client.NewClient("https://api.example.test", "inst-1", "mario", "segreto",
		client.WithHTTPClient(doer))

	_, err := c.SubmitSalesDoc(context.Background(), validDoc())

	var notAuth *client.NotAuthenticatedError
	require.ErrorAs(t, err, &notAuth)
	assert.Empty(t, doer.requests, "no network call before authentication")
}

func TestSubmit_LocalValidationShortCircuits(t *testing.T) {
	doer := &fakeDoer{}
	c := authenticated(t, doer)

	doc := validDoc()
	doc.ProductItems = nil

	_, err := c.SubmitSalesDoc(context.Background(), doc)

	var localErr *client.LocalValidationError
	require.ErrorAs(t, err, &localErr)
	require.Len(t, localErr.Violations, 1)
	assert.Equal(t, validation.Violation{
		Loc:  []string{"local_validation"},
		Msg:  "At least one product item is required",
		Type: "value_error",
	}, localErr.Violations[0])
	assert.Contains(t, localErr.Formatted(), "Validation Errors:")

	assert.Len(t, doer.requests, 1, "only the token call reached the transport")
	assert.Equal(t, client.StateAuthenticated, c.Session().State)
}

func TestSubmit_Accepted(t *testing.T) {
	doer := &fakeDoer{}
	c := authenticated(t, doer)
	doer.respond(http.StatusCreated, `{"id":"doc-42","status":"accepted"}`)

	resp, err := c.SubmitSalesDoc(context.Background(), validDoc())

	require.NoError(t, err)
	assert.Equal(t, &client.SubmitResponse{ID: "doc-42", Status: "accepted"}, resp)
	assert.Equal(t, client.StateAuthenticated, c.Session().State)

	req := doer.requests[1]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/documents/sales", req.URL.Path)
	assert.Equal(t, "inst-1", req.URL.Query().Get("keyInstitution"))
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
	assert.Contains(t, doer.bodies[1], `"ProductItems"`)
}

func TestSubmit_RemoteValidation(t *testing.T) {
	doer := &fakeDoer{}
	c := authenticated(t, doer)
	doer.respond(http.StatusUnprocessableEntity,
		`{"detail":[{"loc":["ProductItems",0,"UnitProductPrice"],"msg":"must be >= 0","type":"value_error"}]}`)

	_, err := c.SubmitSalesDoc(context.Background(), validDoc())

	var remoteErr *client.RemoteValidationError
	require.ErrorAs(t, err, &remoteErr)
	require.Len(t, remoteErr.Violations, 1)
	// Numeric array indexes become decimal strings in the shared loc shape.
	assert.Equal(t, validation.Violation{
		Loc:  []string{"ProductItems", "0", "UnitProductPrice"},
		Msg:  "must be >= 0",
		Type: "value_error",
	}, remoteErr.Violations[0])
	assert.Equal(t, client.StateAuthenticated, c.Session().State)
}

func TestSubmit_MalformedRejectionBody(t *testing.T) {
	doer := &fakeDoer{}
	c := authenticated(t, doer)
	doer.respond(http.StatusUnprocessableEntity, `<html>gateway error</html>`)

	_, err := c.SubmitSalesDoc(context.Background(), validDoc())

	var remoteErr *client.RemoteValidationError
	require.ErrorAs(t, err, &remoteErr)
	require.Len(t, remoteErr.Violations, 1)
	assert.Equal(t, `<html>gateway error</html>`, remoteErr.Violations[0].Msg)
	assert.Equal(t, validation.TypeInvalidResponseFormat, remoteErr.Violations[0].Type)
	assert.Equal(t, `<html>gateway error</html>`, remoteErr.RawBody)
}

func TestSubmit_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		body   string
		target any
	}{
		{"expired token", http.StatusUnauthorized, `{"detail":"expired"}`, new(*client.AuthError)},
		{"unknown institution", http.StatusNotFound, `{"detail":"not found"}`, new(*client.NotFoundError)},
		{"server error", http.StatusInternalServerError, `boom`, new(*client.UnexpectedTransportError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fakeDoer{}
			c := authenticated(t, doer)
			doer.respond(tt.code, tt.body)

			_, err := c.SubmitSalesDoc(context.Background(), validDoc())
			assert.ErrorAs(t, err, tt.target)
			assert.Equal(t, client.StateAuthenticated, c.Session().State)
		})
	}
}

func TestClose(t *testing.T) {
	doer := &fakeDoer{}
	c := authenticated(t, doer)
	doer.respond(http.StatusNoContent, "")

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, client.Session{State: client.StateClosed}, c.Session())

	req := doer.requests[1]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/logout", req.URL.Path)

	// Every operation on a closed session fails without touching the network.
	var closedErr *client.SessionClosedError
	_, err := c.SubmitSalesDoc(context.Background(), validDoc())
	assert.ErrorAs(t, err, &closedErr)
	assert.ErrorAs(t, c.Close(context.Background()), &closedErr)
	assert.ErrorAs(t, c.Authenticate(context.Background()), &closedErr)
	_, err = c.PaymentMethods(context.Background())
	assert.ErrorAs(t, err, &closedErr)
	assert.Len(t, doer.requests, 2)
}

func TestClose_Forbidden(t *testing.T) {
	doer := &fakeDoer{}
	c := authenticated(t, doer)
	doer.respond(http.StatusForbidden, `{"detail":"forbidden"}`)

	var authErr *client.AuthError
	require.ErrorAs(t, c.Close(context.Background()), &authErr)
	assert.Equal(t, "logout", authErr.Operation)
	assert.Equal(t, client.StateAuthenticated, c.Session().State, "session survives a failed logout")
}

func TestReferenceData(t *testing.T) {
	doer := &fakeDoer{}
	c := authenticated(t, doer)
	doer.respond(http.StatusOK, `{"items":[
		{"id":1,"description":"CONTANTI"},
		{"id":2,"description":"BONIFICO"}
	],"page":1,"size":100,"total":2}`)

	methods, err := c.PaymentMethods(context.Background())

	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.True(t, methods[0].IsCash())
	assert.Equal(t, "BONIFICO", methods[1].Description)

	req := doer.requests[1]
	assert.Equal(t, "/reference-data/payment-methods", req.URL.Path)
	assert.Equal(t, "inst-1", req.URL.Query().Get("keyInstitution"))
	assert.Equal(t, "1", req.URL.Query().Get("page"))
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
}

func TestReferenceData_RequiresAuthentication(t *testing.T) {
	doer := &fakeDoer{}
	c := client.NewClient("https://api.example.test", "inst-1", "mario", "segreto",
		client.WithHTTPClient(doer))

	var notAuth *client.NotAuthenticatedError
	_, err := c.VATRates(context.Background())
	assert.ErrorAs(t, err, &notAuth)
	assert.Empty(t, doer.requests)
}
