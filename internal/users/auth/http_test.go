// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/middleware"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/users/auth"
)

func newRouter(t *testing.T) (http.Handler, *sec.TokenService, func() *gomock.Call) {
	t.Helper()
	service, repo, tokens := newService(t)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens, nil))
	router.Route("/api/auth", auth.NewHandler(service, false).RegisterRoutes)

	expectStudent := func() *gomock.Call {
		return repo.EXPECT().
			FindByEmail(gomock.Any(), sec.RoleStudent, "ines.martin@univ.fr").
			Return(storedStudent(), nil)
	}
	return router, tokens, expectStudent
}

func post(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestLoginEndpoint_Success returns the token twice and sets a script-readable cookie.
*/
func TestLoginEndpoint_Success(t *testing.T) {
	router, tokens, expectStudent := newRouter(t)
	expectStudent()

	recorder := post(router, "/api/auth/login",
		`{"email":"ines.martin@univ.fr","password":"Secret123!","role":"etudiant"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body auth.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Inès", body.User.FirstName)
	assert.Equal(t, "ines.martin@univ.fr", body.User.Email)
	assert.Equal(t, sec.RoleStudent, body.User.Role)
	assert.Equal(t, body.Token, body.User.Token)
	assert.NotNil(t, tokens.Verify(body.Token))
	assert.NotContains(t, recorder.Body.String(), "passwordHash")

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "token", cookie.Name)
	assert.Equal(t, body.Token, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.False(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

/*
TestLoginEndpoint_Errors maps each failure onto its status code.
*/
func TestLoginEndpoint_Errors(t *testing.T) {
	router, _, expectStudent := newRouter(t)
	expectStudent()

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"email":`, http.StatusBadRequest, apperr.CodeValidation},
		{"missing password", `{"email":"ines.martin@univ.fr","role":"etudiant"}`, http.StatusBadRequest, apperr.CodeValidation},
		{"admin role", `{"email":"ines.martin@univ.fr","password":"x","role":"admin"}`, http.StatusBadRequest, apperr.CodeValidation},
		{"wrong password", `{"email":"ines.martin@univ.fr","password":"nope","role":"etudiant"}`, http.StatusUnauthorized, apperr.CodeInvalidSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := post(router, "/api/auth/login", tt.body)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.code)
			assert.Empty(t, recorder.Result().Cookies())
		})
	}
}

/*
TestMeEndpoint requires a verified bearer token.
*/
func TestMeEndpoint(t *testing.T) {
	service, repo, tokens := newService(t)
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens, nil))
	router.Route("/api/auth", auth.NewHandler(service, false).RegisterRoutes)

	repo.EXPECT().FindByID(gomock.Any(), sec.RoleStudent, int64(11)).Return(storedStudent(), nil)

	token, err := tokens.Issue(sec.TokenSubject{UserID: 11, Email: "ines.martin@univ.fr"}, sec.RoleStudent, sec.LoginTTL)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"studentId":"E2024001"`)
	assert.NotContains(t, recorder.Body.String(), "$2a$")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestLogoutEndpoint expires the token cookie.
*/
func TestLogoutEndpoint(t *testing.T) {
	router, _, _ := newRouter(t)

	recorder := post(router, "/api/auth/logout", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
