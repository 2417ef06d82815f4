// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/uniportal/internal/platform/sec"
)

const (
	testSecret = "test-signing-secret-with-enough-entropy"
	testIssuer = "uniportal.test"
)

func newTokenService(t *testing.T, options ...sec.TokenOption) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, testIssuer, options...)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_EmptySecret refuses to start without signing material.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	service, err := sec.NewTokenService("", testIssuer)
	assert.Error(t, err)
	assert.Nil(t, service)
}

/*
TestTokenService_IssueVerify checks payload fidelity and lifetime for both flows.
*/
func TestTokenService_IssueVerify(t *testing.T) {
	service := newTokenService(t)
	subject := sec.TokenSubject{UserID: 42, Email: "ada@univ.fr"}

	tests := []struct {
		name string
		role sec.UserRole
		ttl  time.Duration
	}{
		{"student_login", sec.RoleStudent, sec.LoginTTL},
		{"instructor_login", sec.RoleInstructor, sec.LoginTTL},
		{"remembered_session", sec.RoleStudent, sec.RememberTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.Issue(subject, tt.role, tt.ttl)
			require.NoError(t, err)

			payload := service.Verify(token)
			require.NotNil(t, payload)

			assert.Equal(t, subject.UserID, payload.UserID)
			assert.Equal(t, subject.Email, payload.Email)
			assert.Equal(t, tt.role, payload.Role)
			assert.Equal(t, tt.ttl, payload.ExpiresAt.Sub(payload.IssuedAt))
			assert.NotEmpty(t, payload.TokenID)
		})
	}
}

/*
TestTokenService_IssueRejectsRole keeps admin and unknown roles out of tokens.
*/
func TestTokenService_IssueRejectsRole(t *testing.T) {
	service := newTokenService(t)
	subject := sec.TokenSubject{UserID: 1, Email: "a@univ.fr"}

	for _, role := range []sec.UserRole{sec.RoleAdmin, "bogusrole", ""} {
		token, err := service.Issue(subject, role, sec.LoginTTL)
		assert.ErrorIs(t, err, sec.ErrInvalidRole)
		assert.Empty(t, token)
	}
}

/*
TestTokenService_VerifyExpired returns nil once the expiry has passed.
*/
func TestTokenService_VerifyExpired(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	issuer := newTokenService(t, sec.WithClock(func() time.Time { return past }))

	token, err := issuer.Issue(sec.TokenSubject{UserID: 7, Email: "old@univ.fr"}, sec.RoleStudent, sec.LoginTTL)
	require.NoError(t, err)

	assert.Nil(t, newTokenService(t).Verify(token))
}

/*
TestTokenService_VerifyForeignSecret rejects tokens signed with another key.
*/
func TestTokenService_VerifyForeignSecret(t *testing.T) {
	foreign, err := sec.NewTokenService("another-secret", testIssuer)
	require.NoError(t, err)

	token, err := foreign.Issue(sec.TokenSubject{UserID: 7, Email: "x@univ.fr"}, sec.RoleStudent, sec.LoginTTL)
	require.NoError(t, err)

	assert.Nil(t, newTokenService(t).Verify(token))
}

/*
TestTokenService_VerifyMalformed never panics on garbage input.
*/
func TestTokenService_VerifyMalformed(t *testing.T) {
	service := newTokenService(t)

	inputs := []string{"", "abc", "a.b.c", "eyJhbGciOiJIUzI1NiJ9..", "Bearer xyz"}
	for _, input := range inputs {
		assert.NotPanics(t, func() {
			assert.Nil(t, service.Verify(input))
		})
	}
}

/*
TestTokenService_VerifyForgedRole rejects a correctly signed token with an out-of-partition role.
*/
func TestTokenService_VerifyForgedRole(t *testing.T) {
	now := time.Now()
	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: 1,
		Email:  "root@univ.fr",
		Role:   string(sec.RoleAdmin),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	assert.Nil(t, newTokenService(t).Verify(token))
}

/*
TestTokenService_VerifyNoneAlgorithm rejects unsigned tokens.
*/
func TestTokenService_VerifyNoneAlgorithm(t *testing.T) {
	now := time.Now()
	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: 1,
		Email:  "a@univ.fr",
		Role:   string(sec.RoleStudent),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Nil(t, newTokenService(t).Verify(token))
}

/*
TestUserRole_Hierarchy checks partition parsing and the role ladder.
*/
func TestUserRole_Hierarchy(t *testing.T) {
	role, ok := sec.ParseRole("etudiant")
	assert.True(t, ok)
	assert.Equal(t, sec.RoleStudent, role)

	_, ok = sec.ParseRole("admin")
	assert.False(t, ok)
	_, ok = sec.ParseRole("bogusrole")
	assert.False(t, ok)

	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleInstructor))
	assert.True(t, sec.RoleInstructor.AtLeast(sec.RoleStudent))
	assert.False(t, sec.RoleStudent.AtLeast(sec.RoleInstructor))
	assert.False(t, sec.UserRole("").AtLeast(sec.UserRole("")))
}
