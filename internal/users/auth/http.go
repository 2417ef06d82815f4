// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/uniportal/internal/platform/constants"
	"github.com/taibuivan/uniportal/internal/platform/middleware"
	requestutil "github.com/taibuivan/uniportal/internal/platform/request"
	"github.com/taibuivan/uniportal/internal/platform/respond"
	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// # Definitions & Constructors

// Handler implements the role-qualified authentication endpoints.
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler]. secureCookies marks the token cookie Secure.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// RegisterRoutes adds the authentication routes to router.
//
// # Endpoints
//   - POST /login    : Verifies role-qualified credentials and sets the token cookie.
//   - POST /register : Creates a student account.
//   - GET  /me       : Returns the caller's principal.
//   - POST /logout   : Clears the token cookie.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	router.Post("/register", handler.register)
	router.Post("/logout", handler.logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})
}

// # Request & Response Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserSummary is the user object returned by login and registration.
type UserSummary struct {
	FirstName string       `json:"firstName"`
	Email     string       `json:"email"`
	Token     string       `json:"token"`
	Role      sec.UserRole `json:"role"`
}

// LoginResponse is the body of a successful login or registration.
type LoginResponse struct {
	User  UserSummary `json:"user"`
	Token string      `json:"token"`
}

func newLoginResponse(result *LoginResult) LoginResponse {
	return LoginResponse{
		User: UserSummary{
			FirstName: result.Principal.FirstName,
			Email:     result.Principal.Email,
			Token:     result.Token,
			Role:      result.Principal.Role,
		},
		Token: result.Token,
	}
}

/*
Login authenticates a principal inside the requested partition.

POST /api/auth/login

Request:
  - Body: loginRequest (Email, Password, Role)

Response:
  - 200: LoginResponse, plus the token cookie
  - 400: Missing field or unknown role
  - 404: No principal with this email in the partition
  - 401: Wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.tokenCookie(result.Token))
	respond.OK(writer, newLoginResponse(result))
}

/*
Register enrolls a new student.

POST /api/auth/register

Response:
  - 201: LoginResponse, plus the token cookie
  - 400: Missing field, invalid email or weak password
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.tokenCookie(result.Token))
	respond.Created(writer, newLoginResponse(result))
}

/*
Me returns the authenticated principal.

GET /api/auth/me

Response:
  - 200: Principal
  - 401: Missing or invalid token
  - 404: Principal no longer exists
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := handler.authService.Me(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal)
}

/*
Logout clears the token cookie. Issued tokens stay valid until they expire.

POST /api/auth/logout
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie := handler.tokenCookie("")
	cookie.MaxAge = -1
	http.SetCookie(writer, cookie)

	respond.OK(writer, map[string]string{constants.FieldMessage: MsgLoggedOut})
}

// tokenCookie is readable by client scripts so the session bridge can mirror it.
func (handler *Handler) tokenCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     constants.TokenCookieName,
		Value:    token,
		Path:     constants.CookiePath,
		MaxAge:   int(sec.LoginTTL.Seconds()),
		Secure:   handler.secureCookies,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	}
}
