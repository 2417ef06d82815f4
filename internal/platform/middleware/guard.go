// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/taibuivan/uniportal/internal/platform/constants"
	"github.com/taibuivan/uniportal/internal/platform/metrics"
	"github.com/taibuivan/uniportal/internal/platform/respond"
)

// # Session Detection

// SessionSource tells which channel carries the caller's session marker.
type SessionSource int

const (
	// SourceNone means no session cookie was presented.
	SourceNone SessionSource = iota

	// SourceNative is a session cookie issued by the native credential provider.
	SourceNative

	// SourceBridged is the token cookie mirrored by the client session bridge.
	SourceBridged
)

// String implements fmt.Stringer.
func (s SessionSource) String() string {
	switch s {
	case SourceNative:
		return "native"
	case SourceBridged:
		return "bridged"
	default:
		return "none"
	}
}

// DetectSession reports the first session marker found on the request.
// Only presence is checked. Values are verified later by [Authenticate].
func DetectSession(request *http.Request) SessionSource {
	for _, name := range []string{constants.SessionCookieName, constants.SecureSessionCookieName} {
		if hasCookie(request, name) {
			return SourceNative
		}
	}
	if hasCookie(request, constants.TokenCookieName) {
		return SourceBridged
	}
	return SourceNone
}

func hasCookie(request *http.Request, name string) bool {
	cookie, err := request.Cookie(name)
	return err == nil && cookie.Value != ""
}

// # Route Guard

// RouteGuard redirects anonymous navigations away from protected areas.
type RouteGuard struct {
	prefixes  []string
	loginPath string
	metrics   *metrics.Metrics
}

// NewRouteGuard protects every path equal to or below one of prefixes.
// Anonymous requests are sent to loginPath.
func NewRouteGuard(prefixes []string, loginPath string, m *metrics.Metrics) *RouteGuard {
	cleaned := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
		if prefix != "" {
			cleaned = append(cleaned, prefix)
		}
	}
	if loginPath == "" {
		loginPath = "/"
	}
	return &RouteGuard{prefixes: cleaned, loginPath: loginPath, metrics: m}
}

// Protects reports whether path falls under a protected prefix.
// The path is cleaned first, so "//dashboard" and "/./dashboard" are protected too.
// Matching is per path segment: "/dashboards" is not under "/dashboard".
func (g *RouteGuard) Protects(requestPath string) bool {
	cleaned := path.Clean("/" + requestPath)
	for _, prefix := range g.prefixes {
		if cleaned == prefix || strings.HasPrefix(cleaned, prefix+"/") {
			return true
		}
	}
	return false
}

/*
Middleware lets protected requests through when any session marker is present
and answers the others with a bodiless 307 to the login path.

The original destination is not carried in the redirect.
*/
func (g *RouteGuard) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !g.Protects(request.URL.Path) {
				next.ServeHTTP(writer, request)
				return
			}

			if DetectSession(request) == SourceNone {
				g.metrics.GuardDecision(metrics.DecisionRedirect)
				respond.Redirect(writer, http.StatusTemporaryRedirect, g.loginPath)
				return
			}

			g.metrics.GuardDecision(metrics.DecisionPass)
			next.ServeHTTP(writer, request)
		})
	}
}
