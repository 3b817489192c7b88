package sandbox_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mambusrl/npsquare-go/internal/model"
	"github.com/mambusrl/npsquare-go/internal/sandbox"
)

func newTestServer() *sandbox.Server {
	return sandbox.NewServer(&sandbox.Config{
		KeyInstitution: "inst-1",
		Username:       "mario",
		Password:       "segreto",
		SigningKey:     []byte("test-signing-key"),
	})
}

func obtainToken(t *testing.T, s *sandbox.Server) string {
	t.Helper()
	form := url.Values{}
	form.Set("username", "mario")
	form.Set("password", "segreto")
	form.Set("client_id", "inst-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.AccessToken)
	return payload.AccessToken
}

func TestToken_BadCredentials(t *testing.T) {
	s := newTestServer()

	form := url.Values{}
	form.Set("username", "mario")
	form.Set("password", "sbagliata")
	form.Set("client_id", "inst-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerAuth(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer token", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + obtainToken(t, s), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/reference-data/payment-methods", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			s.Handler().ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLogout(t *testing.T) {
	s := newTestServer()
	token := obtainToken(t, s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestReferenceDataListing(t *testing.T) {
	s := newTestServer()
	token := obtainToken(t, s)

	paths := []string{
		"/reference-data/payment-methods",
		"/reference-data/vat-rates",
		"/reference-data/cost-centers",
		"/reference-data/sub-accounts",
		"/documents/types",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			s.Handler().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var page struct {
				Items []json.RawMessage `json:"items"`
				Page  int               `json:"page"`
				Total int               `json:"total"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
			assert.Equal(t, 1, page.Page)
			assert.NotEmpty(t, page.Items)
			assert.Equal(t, len(page.Items), page.Total)
		})
	}
}

func submitDoc(t *testing.T, s *sandbox.Server, token, key string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/documents/sales?keyInstitution="+key, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestSubmit_Accepted(t *testing.T) {
	s := newTestServer()
	token := obtainToken(t, s)

	doc := model.NewSalesDoc("invoice", "2026-08-29")
	doc.Stakeholder = &model.Stakeholder{CompanyName: "ACME srl"}
	doc.AddProductItem(*model.NewProductItem("Servizio di consulenza", "22", decimal.NewFromInt(100)))
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	w := submitDoc(t, s, token, "inst-1", body)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "accepted", resp.Status)
}

func TestSubmit_UnknownInstitution(t *testing.T) {
	s := newTestServer()
	token := obtainToken(t, s)

	w := submitDoc(t, s, token, "inst-2", []byte(`{}`))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmit_RejectsInvalidDocument(t *testing.T) {
	s := newTestServer()
	token := obtainToken(t, s)

	doc := model.NewSalesDoc("invoice", "2026-08-29")
	doc.Stakeholder = &model.Stakeholder{CompanyName: "ACME srl"}
	item := model.NewProductItem("", "22", decimal.NewFromInt(100))
	doc.AddProductItem(*item)
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	w := submitDoc(t, s, token, "inst-1", body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Detail []struct {
			Loc  []string `json:"loc"`
			Msg  string   `json:"msg"`
			Type string   `json:"type"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Detail, 1)
	assert.Equal(t, []string{"ProductItems", "0"}, resp.Detail[0].Loc)
	assert.Equal(t, "ProductDescription is required", resp.Detail[0].Msg)
	assert.Equal(t, "value_error", resp.Detail[0].Type)
}

func TestSubmit_RejectsUnparsableBody(t *testing.T) {
	s := newTestServer()
	token := obtainToken(t, s)

	w := submitDoc(t, s, token, "inst-1", []byte(`{"Type": [`))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Detail []struct {
			Loc []string `json:"loc"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Detail, 1)
	assert.Equal(t, []string{"body"}, resp.Detail[0].Loc)
}
