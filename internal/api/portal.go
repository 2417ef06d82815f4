// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/uniportal/internal/platform/middleware"
	"github.com/taibuivan/uniportal/internal/platform/respond"
	requestutil "github.com/taibuivan/uniportal/internal/platform/request"
)

// PortalSummary is what the protected areas return about the caller.
type PortalSummary struct {
	Area    string `json:"area"`
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Session string `json:"session"`
}

// portalSummary serves the landing document of a protected area.
func portalSummary(area string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		claims, err := requestutil.RequiredClaims(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, PortalSummary{
			Area:    area,
			UserID:  claims.UserID,
			Email:   claims.Email,
			Role:    string(claims.Role),
			Session: middleware.DetectSession(request).String(),
		})
	}
}
