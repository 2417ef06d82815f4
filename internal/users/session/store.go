// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"time"
)

// # Session Data Access

// Store persists native session records keyed by session identifier.
type Store interface {

	/*
		Save stores a record under id for ttl.

		Returns:
		  - error: Persistence failures
	*/
	Save(ctx context.Context, id string, record *Record, ttl time.Duration) error

	/*
		Get returns the record stored under id.

		Returns:
		  - *Record: The stored record
		  - error: apperr.NotFound when absent or expired, or storage failures
	*/
	Get(ctx context.Context, id string) (*Record, error)

	/*
		Delete removes the record stored under id. Deleting an absent record is not an error.
	*/
	Delete(ctx context.Context, id string) error
}
