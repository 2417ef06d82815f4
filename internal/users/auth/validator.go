// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/platform/validate"
)

// # Credential Validator

// CredentialValidator checks an identity and secret against one principal partition.
type CredentialValidator struct {
	principals PrincipalRepository
}

// NewCredentialValidator constructs a validator over the principal store.
func NewCredentialValidator(principals PrincipalRepository) *CredentialValidator {
	return &CredentialValidator{principals: principals}
}

/*
Authenticate verifies credentials inside the partition selected by role.

The checks run in a fixed order and stop at the first failure:
 1. Identity, secret and a partition role are required (400).
 2. The identity must exist in that partition (404), even if it exists in the other.
 3. The secret must match the stored hash (401).

Returns:
  - *Principal: The matching principal without its password hash
  - error: apperr.ValidationError, apperr.NotFound, apperr.InvalidSecret or apperr.Internal
*/
func (validator *CredentialValidator) Authenticate(ctx context.Context, identity, secret, role string) (*Principal, error) {
	check := &validate.Validator{}
	check.Required(FieldEmail, identity).
		Required(FieldPassword, secret).
		OneOf(FieldRole, role, sec.PartitionRoles...)

	if err := check.ErrWith(MsgInvalidInput); err != nil {
		return nil, err
	}

	partitionRole, _ := sec.ParseRole(role)

	principal, err := validator.principals.FindByEmail(ctx, partitionRole, NormalizeEmail(identity))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound(MsgPrincipalNotFound)
		}
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.Internal(fmt.Errorf("credential_lookup_failed: %w", err))
	}

	if !sec.CheckPasswordHash(secret, principal.PasswordHash) {
		return nil, apperr.InvalidSecret(MsgInvalidSecret)
	}

	return principal.Sanitized(), nil
}
