// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// # Principal Data Access

// PrincipalRepository is the partitioned principal store.
//
// Lookups return an [apperr.AppError] with code NOT_FOUND when no principal
// matches inside the requested partition.
type PrincipalRepository interface {

	/*
		FindByEmail returns the principal with the given email inside the role's partition.

		Parameters:
		  - ctx: context.Context
		  - role: sec.UserRole (etudiant or enseignant)
		  - email: string (normalized)

		Returns:
		  - *Principal: Hydrated entity, password hash included
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(ctx context.Context, role sec.UserRole, email string) (*Principal, error)

	/*
		FindByID returns the principal with the given ID inside the role's partition.

		Parameters:
		  - ctx: context.Context
		  - role: sec.UserRole
		  - id: int64

		Returns:
		  - *Principal: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(ctx context.Context, role sec.UserRole, id int64) (*Principal, error)

	/*
		Create inserts a principal into the partition of principal.Role and
		fills its ID and timestamps.

		Returns:
		  - error: apperr.Conflict on a duplicate email, or storage failures
	*/
	Create(ctx context.Context, principal *Principal) error
}
