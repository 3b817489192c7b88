package model_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mambusrl/npsquare-go/internal/model"
)

func TestReference_SingleVariant(t *testing.T) {
	text := model.TextReference("commessa 42")
	assert.Equal(t, model.RefText, text.Kind())
	v, ok := text.Text()
	assert.True(t, ok)
	assert.Equal(t, "commessa 42", v)
	_, ok = text.Number()
	assert.False(t, ok)

	num := model.NumericReference(decimal.NewFromInt(7))
	assert.Equal(t, model.RefNumeric, num.Kind())
	assert.Equal(t, decimal.NewFromInt(7), num.Value())

	var none model.Reference
	assert.True(t, none.IsZero())
	assert.Nil(t, none.Value())
}

func TestManagementData_DecodePriority(t *testing.T) {
	// All three reference columns populated: text wins.
	var m model.ManagementData
	require.NoError(t, json.Unmarshal([]byte(`{
		"TipoDato": "RIF",
		"RiferimentoTesto": "pratica 9",
		"RiferimentoNumero": 12.5,
		"RiferimentoData": "2026-01-15"
	}`), &m))

	assert.Equal(t, model.RefText, m.Reference.Kind())
	assert.Equal(t, "pratica 9", m.Reference.Value())

	// Without text, numeric wins over date.
	require.NoError(t, json.Unmarshal([]byte(`{
		"TipoDato": "RIF",
		"RiferimentoNumero": 12.5,
		"RiferimentoData": "2026-01-15"
	}`), &m))

	assert.Equal(t, model.RefNumeric, m.Reference.Kind())

	// Date alone.
	require.NoError(t, json.Unmarshal([]byte(`{"TipoDato":"RIF","RiferimentoData":"2026-01-15"}`), &m))
	assert.Equal(t, model.RefDate, m.Reference.Kind())
}

func TestManagementData_EncodeSingleColumn(t *testing.T) {
	m := model.ManagementData{
		DataType:  "RIF",
		Reference: model.NumericReference(decimal.RequireFromString("12.5")),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"TipoDato":"RIF","RiferimentoNumero":12.5}`, string(data))
}

func TestManagementData_Validate(t *testing.T) {
	m := model.ManagementData{}
	assert.Contains(t, m.Validate(), "TipoDato is required")

	m.DataType = "RIF"
	assert.True(t, m.IsValid())
}

func TestManagementData_ValidateDateFormats(t *testing.T) {
	valid := []string{
		"2026-01-15",
		"2026-01-15 13:45:00",
		"15/01/2026",
		"15-01-2026",
	}
	for _, date := range valid {
		m := model.ManagementData{DataType: "RIF", Reference: model.DateReference(date)}
		assert.Empty(t, m.Validate(), "expected %q to be accepted", date)
	}

	invalid := []string{
		"15.01.2026",
		"2026-1-5", // must re-format byte-for-byte
		"2026-02-30",
		"gennaio 15",
	}
	for _, date := range invalid {
		m := model.ManagementData{DataType: "RIF", Reference: model.DateReference(date)}
		assert.NotEmpty(t, m.Validate(), "expected %q to be rejected", date)
	}
}
