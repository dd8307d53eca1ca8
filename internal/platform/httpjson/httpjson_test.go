package httpjson

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Nombre string `json:"nombre" validate:"required"`
	Plazo  int    `json:"plazo_dias" validate:"min=1,max=365"`
}

func TestDecode_OK(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":"Tutela","plazo_dias":3}`))
	w := httptest.NewRecorder()

	var p payload
	require.True(t, Decode(w, r, &p))
	assert.Equal(t, "Tutela", p.Nombre)
	assert.Equal(t, 3, p.Plazo)
}

func TestDecode_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":`))
	w := httptest.NewRecorder()

	var p payload
	assert.False(t, Decode(w, r, &p))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecode_UnknownField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":"x","plazo_dias":3,"otro":1}`))
	w := httptest.NewRecorder()

	var p payload
	assert.False(t, Decode(w, r, &p))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecode_ValidationUsesJSONNames(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"plazo_dias":400}`))
	w := httptest.NewRecorder()

	var p payload
	require.False(t, Decode(w, r, &p))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "required", body.Fields["nombre"])
	assert.Equal(t, "max", body.Fields["plazo_dias"])
}
