// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements credential verification and the role-qualified login.

It defines the Principal entity, the partitioned principal store contract, the
Credential Validator and the HTTP endpoints that mint tokens for students and
instructors.

# Architecture

Principals live in one of two partitions selected by role. A principal is only
ever looked up inside the partition the caller asked for, so the same email may
exist once per partition.
*/
package auth

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// # Domain Entities

// Principal is a student or instructor known to the portal.
type Principal struct {
	ID            int64        `json:"id"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	StudentNumber string       `json:"studentId,omitempty"`
	Role          sec.UserRole `json:"role"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Sanitized returns a copy without the password hash.
func (p *Principal) Sanitized() *Principal {
	clone := *p
	clone.PasswordHash = ""
	return &clone
}

// DisplayName joins first and last names.
func (p *Principal) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Subject returns the identity embedded in issued tokens.
func (p *Principal) Subject() sec.TokenSubject {
	return sec.TokenSubject{UserID: p.ID, Email: p.Email}
}

// # Normalization

// NormalizeEmail trims and lower-cases an address so lookups match the
// case-insensitive unique index of the store.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// NormalizeName trims a personal name and composes it to NFC, so that
// visually identical names are stored identically.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// SplitName splits a full name into first name and the remainder.
func SplitName(full string) (first, last string) {
	first, last, _ = strings.Cut(NormalizeName(full), " ")
	return first, last
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldName     = "name"
	FieldUser     = "user"
	FieldToken    = "token"
)
