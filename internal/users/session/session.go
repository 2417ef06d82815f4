// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the native credential provider.

A successful sign-in creates a server-side session record holding a
long-lived token. The browser only receives an opaque, HttpOnly session
cookie. The record is looked up on each request and its token re-verified,
so a session never outlives the token it carries.
*/
package session

import (
	"strconv"
	"time"

	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// # Domain Entities

// Record is the server-side state of one native session.
type Record struct {
	UserID    int64        `json:"userId"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      sec.UserRole `json:"role"`
	StudentID string       `json:"studentId,omitempty"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// # Views

// User is the identity part of the session object sent to clients.
type User struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      sec.UserRole `json:"role"`
	StudentID string       `json:"studentId,omitempty"`
}

// View is the session object returned by the session endpoint.
type View struct {
	User    User   `json:"user"`
	Expires string `json:"expires"`
}

// View renders the client-facing session object. The token stays server-side.
func (r *Record) View() View {
	return View{
		User: User{
			ID:        strconv.FormatInt(r.UserID, 10),
			Name:      r.Name,
			Email:     r.Email,
			Role:      r.Role,
			StudentID: r.StudentID,
		},
		Expires: r.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
