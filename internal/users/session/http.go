// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/uniportal/internal/platform/constants"
	requestutil "github.com/taibuivan/uniportal/internal/platform/request"
	"github.com/taibuivan/uniportal/internal/platform/respond"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the native provider endpoints.
type Handler struct {
	provider      *Provider
	secureCookies bool
}

// NewHandler constructs a new [Handler]. With secureCookies the session
// cookie is Secure and carries the __Secure- prefix.
func NewHandler(provider *Provider, secureCookies bool) *Handler {
	return &Handler{provider: provider, secureCookies: secureCookies}
}

// RegisterRoutes adds the native provider routes to router.
//
// # Endpoints
//   - POST /callback/credentials : Signs in and sets the session cookie.
//   - GET  /session              : Returns the current session or {}.
//   - POST /signout              : Ends the session and clears its cookies.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/callback/credentials", handler.callback)
	router.Get("/session", handler.current)
	router.Post("/signout", handler.signOut)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

/*
Callback signs a principal in with role-qualified credentials.

POST /api/auth/callback/credentials

Request:
  - Body: JSON or form-encoded email, password and role

Response:
  - 200: View, plus the session cookie
  - 400/404/401: Credential Validator taxonomy
*/
func (handler *Handler) callback(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeCredentials(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, record, err := handler.provider.SignIn(request.Context(), input.Email, input.Password, input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.sessionCookie(handler.cookieName(), id, int(sec.RememberTTL.Seconds())))
	respond.OK(writer, record.View())
}

/*
Current returns the caller's native session.

GET /api/auth/session

Response:
  - 200: View, or {} when there is no live session
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	record, err := handler.provider.Current(request.Context(), sessionID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if record == nil {
		respond.OK(writer, struct{}{})
		return
	}
	respond.OK(writer, record.View())
}

/*
SignOut ends the native session.

POST /api/auth/signout
*/
func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	if err := handler.provider.SignOut(request.Context(), sessionID(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	for _, name := range []string{constants.SessionCookieName, constants.SecureSessionCookieName} {
		http.SetCookie(writer, handler.sessionCookie(name, "", -1))
	}
	respond.OK(writer, struct{}{})
}

// # Helpers

func (handler *Handler) cookieName() string {
	if handler.secureCookies {
		return constants.SecureSessionCookieName
	}
	return constants.SessionCookieName
}

func (handler *Handler) sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.CookiePath,
		MaxAge:   maxAge,
		Secure:   handler.secureCookies || name == constants.SecureSessionCookieName,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionID reads whichever session cookie is present, secure variant first.
func sessionID(request *http.Request) string {
	if id := requestutil.Cookie(request, constants.SecureSessionCookieName); id != "" {
		return id
	}
	return requestutil.Cookie(request, constants.SessionCookieName)
}

func decodeCredentials(request *http.Request) (credentialsRequest, error) {
	var input credentialsRequest

	if strings.HasPrefix(request.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := request.ParseForm(); err != nil {
			return input, validate.ErrInvalidJSON
		}
		input.Email = request.PostForm.Get("email")
		input.Password = request.PostForm.Get("password")
		input.Role = request.PostForm.Get("role")
		return input, nil
	}

	err := requestutil.DecodeJSON(request, &input)
	return input, err
}
