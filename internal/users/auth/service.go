// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/metrics"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/platform/validate"
)

// # Contracts & Types

// TokenIssuer mints signed tokens for a principal.
type TokenIssuer interface {
	Issue(subject sec.TokenSubject, role sec.UserRole, ttl time.Duration) (string, error)
}

// Service implements the role-qualified login, registration and identity lookup.
type Service struct {
	principals PrincipalRepository
	validator  *CredentialValidator
	tokens     TokenIssuer
	metrics    *metrics.Metrics
}

// NewService constructs a new [Service]. m may be nil.
func NewService(principals PrincipalRepository, tokens TokenIssuer, m *metrics.Metrics) *Service {
	return &Service{
		principals: principals,
		validator:  NewCredentialValidator(principals),
		tokens:     tokens,
		metrics:    m,
	}
}

// Validator exposes the Credential Validator for other sign-in channels.
func (service *Service) Validator() *CredentialValidator {
	return service.validator
}

// LoginResult is a verified principal and the token minted for it.
type LoginResult struct {
	Principal *Principal
	Token     string
}

// # Authentication Flow

// LoginInput holds role-qualified credentials.
type LoginInput struct {
	Email    string
	Password string
	Role     string
}

/*
Login verifies credentials and mints a [sec.LoginTTL] token carrying the requested role.

Returns:
  - *LoginResult: The sanitized principal and its token
  - error: The Credential Validator taxonomy, or apperr.Internal on signing failure
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	principal, err := service.validator.Authenticate(ctx, input.Email, input.Password, input.Role)
	if err != nil {
		service.metrics.AuthAttempt(metrics.ChannelLogin, RoleLabel(input.Role), Outcome(err))
		return nil, err
	}

	token, err := service.tokens.Issue(principal.Subject(), principal.Role, sec.LoginTTL)
	if err != nil {
		service.metrics.AuthAttempt(metrics.ChannelLogin, RoleLabel(input.Role), metrics.OutcomeError)
		return nil, apperr.Internal(fmt.Errorf("auth_service_issue_failed: %w", err))
	}

	service.metrics.AuthAttempt(metrics.ChannelLogin, RoleLabel(input.Role), metrics.OutcomeSuccess)
	return &LoginResult{Principal: principal, Token: token}, nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new student.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

/*
Register creates a student account and signs it in.

Description: Self-registration always lands in the student partition. The
email must be unique there and the password must satisfy the strength policy.

Returns:
  - *LoginResult: The created principal and a [sec.LoginTTL] token
  - error: apperr.ValidationError, apperr.Conflict or apperr.Internal
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	result, err := service.register(ctx, input)
	if err != nil {
		service.metrics.AuthAttempt(metrics.ChannelRegister, string(sec.RoleStudent), Outcome(err))
		return nil, err
	}
	service.metrics.AuthAttempt(metrics.ChannelRegister, string(sec.RoleStudent), metrics.OutcomeSuccess)
	return result, nil
}

func (service *Service) register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	email := NormalizeEmail(input.Email)

	check := &validate.Validator{}
	check.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength)

	if err := check.Err(); err != nil {
		return nil, err
	}

	// Rejects the common duplicate early; the unique index still covers races.
	_, err := service.principals.FindByEmail(ctx, sec.RoleStudent, email)
	switch {
	case err == nil:
		return nil, apperr.Conflict(MsgEmailTaken)
	case !apperr.HasCode(err, apperr.CodeNotFound):
		return nil, internal(err, "auth_service_lookup_failed")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	firstName, lastName := SplitName(input.Name)
	principal := &Principal{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         sec.RoleStudent,
	}

	if err := service.principals.Create(ctx, principal); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict(MsgEmailTaken)
		}
		return nil, internal(err, "auth_service_register_failed")
	}

	token, err := service.tokens.Issue(principal.Subject(), principal.Role, sec.LoginTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_issue_failed: %w", err))
	}

	return &LoginResult{Principal: principal.Sanitized(), Token: token}, nil
}

// # Identity

/*
Me returns the principal identified by a verified token payload.

Returns:
  - *Principal: The sanitized principal
  - error: apperr.NotFound when the principal no longer exists
*/
func (service *Service) Me(ctx context.Context, payload *sec.TokenPayload) (*Principal, error) {
	if payload == nil {
		return nil, apperr.Unauthorized("Authentification requise")
	}

	principal, err := service.principals.FindByID(ctx, payload.Role, payload.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound(MsgPrincipalNotFound)
		}
		return nil, internal(err, "auth_service_me_failed")
	}
	return principal.Sanitized(), nil
}

// # Helpers

// Outcome classifies an authentication error into a metrics outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case apperr.HasCode(err, apperr.CodeValidation):
		return metrics.OutcomeInvalidInput
	case apperr.HasCode(err, apperr.CodeNotFound):
		return metrics.OutcomeNotFound
	case apperr.HasCode(err, apperr.CodeInvalidSecret):
		return metrics.OutcomeInvalidSecret
	case apperr.HasCode(err, apperr.CodeConflict):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}

// RoleLabel bounds a requested role to the partition roles for metric labels.
func RoleLabel(raw string) string {
	if role, ok := sec.ParseRole(raw); ok {
		return string(role)
	}
	return "invalid"
}

// internal keeps existing AppErrors and wraps anything else as Internal.
func internal(err error, action string) error {
	if apperr.IsAppError(err) {
		return err
	}
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
