// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
)

/*
TestAppError_Taxonomy maps every constructor to its status and code.
*/
func TestAppError_Taxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"invalid_input", apperr.ValidationError("x"), http.StatusBadRequest, apperr.CodeValidation},
		{"not_found", apperr.NotFound("x"), http.StatusNotFound, apperr.CodeNotFound},
		{"invalid_secret", apperr.InvalidSecret("x"), http.StatusUnauthorized, apperr.CodeInvalidSecret},
		{"unauthorized", apperr.Unauthorized("x"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"forbidden", apperr.Forbidden("x"), http.StatusForbidden, apperr.CodeForbidden},
		{"conflict", apperr.Conflict("x"), http.StatusConflict, apperr.CodeConflict},
		{"rate_limited", apperr.RateLimited(3), http.StatusTooManyRequests, apperr.CodeRateLimited},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

/*
TestAppError_InternalHidesCause keeps the cause out of the client message.
*/
func TestAppError_InternalHidesCause(t *testing.T) {
	cause := errors.New("pq: relation people.student does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "people.student")
	assert.ErrorIs(t, err, cause)
}

/*
TestAppError_As finds wrapped application errors.
*/
func TestAppError_As(t *testing.T) {
	wrapped := fmt.Errorf("auth_service_failed: %w", apperr.Conflict("déjà utilisé"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeConflict, ae.Code)
	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeConflict))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeConflict))
	assert.Nil(t, apperr.As(errors.New("plain")))
}
