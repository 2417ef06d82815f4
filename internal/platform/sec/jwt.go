// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([auth.TokenIssuer], [middleware.TokenVerifier]).
//
// # Revocation
//
// Tokens are verified statelessly with the process secret. There is no deny-list:
// a token stays valid until its expiry, which is the only eviction mechanism.
// Server-initiated logout would need a deny-list keyed by [TokenPayload.TokenID].
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// # Token Lifetimes

const (
	// LoginTTL is the lifetime of a token minted by the role-qualified login.
	LoginTTL = 24 * time.Hour

	// RememberTTL is the lifetime of a token backing a remembered (native provider) session.
	RememberTTL = 30 * 24 * time.Hour
)

// ErrInvalidRole is returned when a token would carry a role outside the two partitions.
var ErrInvalidRole = errors.New("sec: role must be etudiant or enseignant")

// AuthClaims represents the payload embedded inside a signed token.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// TokenSubject is the identity a token is minted for.
type TokenSubject struct {
	UserID int64
	Email  string
}

// TokenPayload is the verified content of a token.
type TokenPayload struct {
	TokenID   string
	UserID    int64
	Email     string
	Role      UserRole
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService handles generation and verification of HS256 tokens.
//
// It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService signing with the given secret.
// An empty secret is rejected: the key must come from the environment.
func NewTokenService(secret, issuer string, options ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret is empty")
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, option := range options {
		option(service)
	}

	return service, nil
}

// Issue creates a signed token for the subject with the given role and lifetime.
func (service *TokenService) Issue(subject TokenSubject, role UserRole, timeToLive time.Duration) (string, error) {
	if !role.IsPartition() {
		return "", ErrInvalidRole
	}
	if timeToLive <= 0 {
		return "", fmt.Errorf("sec: invalid token lifetime %s", timeToLive)
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate token id: %w", err)
	}

	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   fmt.Sprintf("%d", subject.UserID),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: subject.UserID,
		Email:  subject.Email,
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, issuer, expiry and role of a token string.
//
// It returns nil for any token that is malformed, signed with another key or
// algorithm, expired, or carrying an unknown role. Callers treat nil as
// unauthenticated.
func (service *TokenService) Verify(tokenString string) *TokenPayload {
	if tokenString == "" {
		return nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.IssuedAt == nil {
		return nil
	}

	role, ok := ParseRole(claims.Role)
	if !ok {
		return nil
	}

	return &TokenPayload{
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
}
