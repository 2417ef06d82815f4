// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It covers body decoding, bearer credentials and the authenticated identity
placed in the context by the authentication middleware.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/constants"
	"github.com/taibuivan/uniportal/internal/platform/ctxutil"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/platform/validate"
)

// maxBodyBytes caps decoded request bodies. Credential payloads are tiny.
const maxBodyBytes = 64 << 10

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if the body is absent or not valid JSON
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
BearerToken returns the credential of an "Authorization: Bearer <token>" header,
or an empty string when the header is absent or uses another scheme.
*/
func BearerToken(request *http.Request) string {
	header := request.Header.Get(constants.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

/*
Cookie returns the value of the named cookie, or an empty string.
*/
func Cookie(request *http.Request, name string) string {
	cookie, err := request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

/*
Claims extracts the verified token payload from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.TokenPayload {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the token payload.

Returns:
  - *sec.TokenPayload: The verified identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.TokenPayload, error) {
	claims := Claims(request)
	if claims == nil {
		return nil, apperr.Unauthorized("Authentification requise")
	}
	return claims, nil
}
