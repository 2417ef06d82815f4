// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/respond"
)

/*
TestError_AppError verifies the envelope carries the client-safe message and code.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, apperr.ValidationError("Données invalides",
		apperr.FieldError{Field: "email", Message: "Ce champ est obligatoire"}))

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Données invalides", envelope.Error)
	assert.Equal(t, apperr.CodeValidation, envelope.Code)
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, "email", envelope.Details[0].Field)
}

/*
TestError_UnknownError verifies raw errors become a generic 500.
*/
func TestError_UnknownError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection reset")
}

/*
TestRedirect verifies redirects carry a Location header and no body.
*/
func TestRedirect(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Redirect(recorder, http.StatusTemporaryRedirect, "/")

	assert.Equal(t, http.StatusTemporaryRedirect, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
	assert.Zero(t, recorder.Body.Len())
}

func TestCreated(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Created(recorder, map[string]string{"ok": "yes"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, recorder.Body.String())
}
