// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/constants"
	"github.com/taibuivan/uniportal/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/uniportal/internal/platform/request"
	"github.com/taibuivan/uniportal/internal/platform/respond"
	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// TokenVerifier verifies a token string. It returns nil for any invalid token.
type TokenVerifier interface {
	Verify(token string) *sec.TokenPayload
}

// SessionResolver maps a native session identifier to the token it holds.
// An unknown or expired session yields an empty token and a nil error.
type SessionResolver interface {
	ResolveToken(ctx context.Context, sessionID string) (string, error)
}

/*
Authenticate identifies the caller and places the verified payload in the context.

Credentials are tried in this order:
 1. Authorization: Bearer header. An invalid bearer token is rejected with 401.
 2. Native session cookie, resolved through sessions (which may be nil).
 3. The token cookie set by the login endpoint.

Cookies that no longer verify leave the request anonymous.
*/
func Authenticate(verifier TokenVerifier, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			if bearer := requestutil.BearerToken(request); bearer != "" {
				payload := verifier.Verify(bearer)
				if payload == nil {
					respond.Error(writer, request, apperr.Unauthorized("Jeton invalide ou expiré"))
					return
				}
				next.ServeHTTP(writer, request.WithContext(withIdentity(ctx, payload)))
				return
			}

			if payload := fromSessionCookie(ctx, request, verifier, sessions); payload != nil {
				next.ServeHTTP(writer, request.WithContext(withIdentity(ctx, payload)))
				return
			}

			if token := requestutil.Cookie(request, constants.TokenCookieName); token != "" {
				if payload := verifier.Verify(token); payload != nil {
					next.ServeHTTP(writer, request.WithContext(withIdentity(ctx, payload)))
					return
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func fromSessionCookie(ctx context.Context, request *http.Request, verifier TokenVerifier, sessions SessionResolver) *sec.TokenPayload {
	if sessions == nil {
		return nil
	}

	for _, name := range []string{constants.SecureSessionCookieName, constants.SessionCookieName} {
		sessionID := requestutil.Cookie(request, name)
		if sessionID == "" {
			continue
		}

		token, err := sessions.ResolveToken(ctx, sessionID)
		if err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "session_resolve_failed",
				slog.String("cookie", name), slog.Any("error", err))
			continue
		}
		if token == "" {
			continue
		}

		// A stale cookie under one name must not hide a live one under the other.
		if payload := verifier.Verify(token); payload != nil {
			return payload
		}
	}
	return nil
}

func withIdentity(ctx context.Context, payload *sec.TokenPayload) context.Context {
	recordIdentity(ctx, payload.UserID)
	return ctxutil.WithAuthUser(ctx, payload)
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if GetUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentification requise"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose role is below the required one.
// It implies [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentification requise"))
				return
			}

			if !claims.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Permissions insuffisantes"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser retrieves the verified [*sec.TokenPayload] from the context, or nil.
func GetUser(ctx context.Context) *sec.TokenPayload {
	return ctxutil.GetAuthUser(ctx)
}
