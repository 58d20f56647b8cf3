package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

func errResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_DetailString(t *testing.T) {
	err := ParseResponseError(errResponse(http.StatusUnauthorized, `{"detail":"Credenciales inválidas"}`))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Credenciales inválidas", appErr.Message)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestParseResponseError_DetailValidationList(t *testing.T) {
	body := `{"detail":[{"loc":["body","email"],"msg":"field required","type":"value_error.missing"},{"loc":["body","password"],"msg":"too short","type":"value_error"}]}`
	err := ParseResponseError(errResponse(http.StatusUnprocessableEntity, body))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "field required; too short", appErr.Message)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestParseResponseError_NonJSONBody(t *testing.T) {
	err := ParseResponseError(errResponse(http.StatusBadGateway, "upstream exploded"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "upstream exploded", appErr.Message)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestParseResponseError_EmptyBody(t *testing.T) {
	err := ParseResponseError(errResponse(http.StatusNotFound, ""))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "404")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusBadRequest, apperrors.ErrInvalidInput},
		{http.StatusUnauthorized, apperrors.ErrUnauthorized},
		{http.StatusForbidden, apperrors.ErrForbidden},
		{http.StatusNotFound, apperrors.ErrNotFound},
		{http.StatusConflict, apperrors.ErrConflict},
		{http.StatusUnprocessableEntity, apperrors.ErrInvalidInput},
		{http.StatusServiceUnavailable, apperrors.ErrServiceUnavail},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := ParseResponseError(errResponse(tt.status, `{"detail":"x"}`))
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}
