// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/ctxutil"
	"github.com/taibuivan/uniportal/internal/platform/metrics"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/users/auth"
)

// SessionIDLength is the number of random bytes in a session identifier.
const SessionIDLength = 32

// # Contracts & Types

// Authenticator verifies role-qualified credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, identity, secret, role string) (*auth.Principal, error)
}

// Tokens issues and verifies the token held by a session.
type Tokens interface {
	Issue(subject sec.TokenSubject, role sec.UserRole, ttl time.Duration) (string, error)
	Verify(token string) *sec.TokenPayload
}

// Provider is the native credential sign-in channel.
type Provider struct {
	authenticator Authenticator
	tokens        Tokens
	store         Store
	metrics       *metrics.Metrics
}

// NewProvider constructs a new [Provider]. m may be nil.
func NewProvider(authenticator Authenticator, tokens Tokens, store Store, m *metrics.Metrics) *Provider {
	return &Provider{
		authenticator: authenticator,
		tokens:        tokens,
		store:         store,
		metrics:       m,
	}
}

// # Sign In

/*
SignIn verifies credentials and opens a [sec.RememberTTL] session.

Returns:
  - string: The new session identifier, to be set as the session cookie
  - *Record: The stored session
  - error: The Credential Validator taxonomy, or apperr.Internal
*/
func (provider *Provider) SignIn(ctx context.Context, email, password, role string) (string, *Record, error) {
	id, record, err := provider.signIn(ctx, email, password, role)
	provider.metrics.AuthAttempt(metrics.ChannelNative, auth.RoleLabel(role), auth.Outcome(err))
	return id, record, err
}

func (provider *Provider) signIn(ctx context.Context, email, password, role string) (string, *Record, error) {
	principal, err := provider.authenticator.Authenticate(ctx, email, password, role)
	if err != nil {
		return "", nil, err
	}

	token, err := provider.tokens.Issue(principal.Subject(), principal.Role, sec.RememberTTL)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("session_issue_failed: %w", err))
	}

	payload := provider.tokens.Verify(token)
	if payload == nil {
		return "", nil, apperr.Internal(errors.New("session_issue_failed: fresh token did not verify"))
	}

	id, err := sec.GenerateSecureToken(SessionIDLength)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("session_id_failed: %w", err))
	}

	record := &Record{
		UserID:    principal.ID,
		Name:      principal.DisplayName(),
		Email:     principal.Email,
		Role:      principal.Role,
		StudentID: principal.StudentNumber,
		Token:     token,
		ExpiresAt: payload.ExpiresAt,
	}

	if err := provider.store.Save(ctx, id, record, sec.RememberTTL); err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("session_save_failed: %w", err))
	}

	return id, record, nil
}

// # Lookup

/*
Current returns the live session for id, or nil when there is none.

Records whose token no longer verifies are deleted.
*/
func (provider *Provider) Current(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, nil
	}

	record, err := provider.store.Get(ctx, id)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if provider.tokens.Verify(record.Token) == nil {
		if err := provider.store.Delete(ctx, id); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "session_stale_delete_failed", slog.Any("error", err))
		}
		return nil, nil
	}

	return record, nil
}

// ResolveToken returns the token held by session id, or "" when there is none.
func (provider *Provider) ResolveToken(ctx context.Context, id string) (string, error) {
	record, err := provider.Current(ctx, id)
	if err != nil || record == nil {
		return "", err
	}
	return record.Token, nil
}

// # Sign Out

// SignOut deletes session id. Signing out without a session is a no-op.
func (provider *Provider) SignOut(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := provider.store.Delete(ctx, id); err != nil {
		return apperr.Internal(fmt.Errorf("session_delete_failed: %w", err))
	}
	return nil
}
