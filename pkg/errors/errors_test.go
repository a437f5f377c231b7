package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeIdempotency, status: http.StatusConflict, publicMsg: "idempotency key reused", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		assert.Equal(t, tt.status, meta.HTTPStatus, tt.code)
		assert.Equal(t, tt.publicMsg, meta.PublicMessage, tt.code)
		assert.Equal(t, tt.retryable, meta.Retryable, tt.code)
		assert.Equal(t, tt.detailsOK, meta.DetailsAllowed, tt.code)
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, MetadataFor("SOMETHING_UNKNOWN").HTTPStatus)
}

func TestErrorConstructors(t *testing.T) {
	base := Newf(CodeValidation, "missing %s", "folio")
	assert.Equal(t, CodeValidation, base.Code())
	assert.Equal(t, "missing folio", base.Message())
	assert.Nil(t, base.Details())

	base.WithDetails(FieldErrors{}.Add("folio", "is required"))
	assert.NotNil(t, base.Details())

	cause := stdErrors.New("database is locked")
	wrapped := Wrap(CodeDependency, cause, "update mix")
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "DEPENDENCY_ERROR: update mix: database is locked", wrapped.Error())
	assert.Equal(t, "NOT_FOUND: receipt not found", New(CodeNotFound, "receipt not found").Error())
}

func TestPublicHidesInternalMessages(t *testing.T) {
	msg, details := New(CodeNotFound, "mix not found").Public()
	assert.Equal(t, "mix not found", msg)
	assert.Nil(t, details)

	msg, details = Wrap(CodeInternal, stdErrors.New("nil pointer"), "decode row").WithDetails("secret").Public()
	assert.Equal(t, "internal server error", msg)
	assert.Nil(t, details)

	msg, details = New(CodeDependency, "redis down").WithDetails(map[string]string{"redis": "timeout"}).Public()
	assert.Equal(t, "dependency unavailable", msg)
	assert.Equal(t, map[string]string{"redis": "timeout"}, details)
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "no receipt"))
	got := As(err)
	require.NotNil(t, got)
	assert.Equal(t, CodeNotFound, got.Code())
	assert.Nil(t, As(nil))
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeStateConflict))
	assert.False(t, IsCode(stdErrors.New("plain"), CodeInternal))
}
