package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/mixtrack-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/mixtrack-backend/pkg/errors"
)

type mixBody struct {
	Quantity string `json:"quantity" validate:"required"`
}

type receiptBody struct {
	Date  string    `json:"date" validate:"required,isodate"`
	Kind  string    `json:"kind" validate:"required,receiptkind"`
	Sap   string    `json:"sap" validate:"required,numericstr"`
	Mixes []mixBody `json:"mixes" validate:"required,min=1,dive"`
}

func decode(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest receiptBody
	return DecodeJSONBody(req, &dest)
}

func fieldErrors(t *testing.T, err error) pkgerrors.FieldErrors {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	fields, ok := typed.Details().(pkgerrors.FieldErrors)
	require.True(t, ok, "details should be field errors, got %T", typed.Details())
	return fields
}

func TestDecodeJSONBodyValid(t *testing.T) {
	err := decode(t, `{"date":"2024-02-29","kind":"raspberry","sap":"10","mixes":[{"quantity":"1"}]}`)
	assert.NoError(t, err)
}

func TestDecodeJSONBodyFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{
			name:    "impossible date",
			body:    `{"date":"2023-02-29","kind":"raspberry","sap":"10","mixes":[{"quantity":"1"}]}`,
			field:   "date",
			message: "must be a valid date (YYYY-MM-DD)",
		},
		{
			name:    "unknown kind",
			body:    `{"date":"2024-01-01","kind":"kiwi","sap":"10","mixes":[{"quantity":"1"}]}`,
			field:   "kind",
			message: "must be one of: raspberry, strawberry",
		},
		{
			name:    "zero sap",
			body:    `{"date":"2024-01-01","kind":"raspberry","sap":"0","mixes":[{"quantity":"1"}]}`,
			field:   "sap",
			message: "must be a number greater than 0",
		},
		{
			name:    "empty mixes",
			body:    `{"date":"2024-01-01","kind":"raspberry","sap":"10","mixes":[]}`,
			field:   "mixes",
			message: "must contain at least 1 item(s)",
		},
		{
			name:    "nested mix field",
			body:    `{"date":"2024-01-01","kind":"raspberry","sap":"10","mixes":[{"quantity":""}]}`,
			field:   "mixes[0].quantity",
			message: "is required",
		},
		{
			name:  "unknown field",
			body:  `{"date":"2024-01-01","owner":"x"}`,
			field: "owner",
		},
		{
			name:  "wrong type",
			body:  `{"date":20240101}`,
			field: "date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fieldErrors(t, decode(t, tt.body))
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, fields[0].Message)
			}
		})
	}
}

func TestDecodeJSONBodyEmpty(t *testing.T) {
	err := decode(t, "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestRegisterKinds(t *testing.T) {
	t.Cleanup(func() { RegisterKinds(enums.NewReceiptKindSet(nil)) })
	RegisterKinds(enums.NewReceiptKindSet([]string{"blueberry"}))

	err := decode(t, `{"date":"2024-01-01","kind":"blueberry","sap":"10","mixes":[{"quantity":"1"}]}`)
	assert.NoError(t, err)

	fields := fieldErrors(t, decode(t, `{"date":"2024-01-01","kind":"raspberry","sap":"10","mixes":[{"quantity":"1"}]}`))
	assert.Equal(t, "kind", fields[0].Field)
}

func TestParseID(t *testing.T) {
	build := func(value string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rc := chi.NewRouteContext()
		rc.URLParams.Add("id", value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	}

	id, err := ParseID(build("42"), "id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := ParseID(build(raw), "id")
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), raw)
	}
}

func TestSearchParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?search=%20folio:A;%20", nil)
	assert.Equal(t, "folio:A;", SearchParam(req))

	long := strings.Repeat("a", maxSearchLength+10)
	req = httptest.NewRequest(http.MethodGet, "/?search="+long, nil)
	assert.Len(t, SearchParam(req), maxSearchLength)
}
