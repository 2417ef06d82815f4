// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/database/schema"
	"github.com/taibuivan/uniportal/internal/platform/dberr"
	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// # Partition Tables

// partition describes the SQL shape of one principal collection.
type partition struct {
	table     string
	id        string
	email     string
	password  string
	firstName string
	lastName  string
	createdAt string
	updatedAt string

	// studentNumber is the column expression for StudentNumber.
	// Instructors have none.
	studentNumber string
}

var partitions = map[sec.UserRole]partition{
	sec.RoleStudent: {
		table:         schema.PeopleStudent.Table,
		id:            schema.PeopleStudent.ID,
		email:         schema.PeopleStudent.Email,
		password:      schema.PeopleStudent.Password,
		firstName:     schema.PeopleStudent.FirstName,
		lastName:      schema.PeopleStudent.LastName,
		createdAt:     schema.PeopleStudent.CreatedAt,
		updatedAt:     schema.PeopleStudent.UpdatedAt,
		studentNumber: fmt.Sprintf("COALESCE(%s, '')", schema.PeopleStudent.StudentNumber),
	},
	sec.RoleInstructor: {
		table:         schema.PeopleInstructor.Table,
		id:            schema.PeopleInstructor.ID,
		email:         schema.PeopleInstructor.Email,
		password:      schema.PeopleInstructor.Password,
		firstName:     schema.PeopleInstructor.FirstName,
		lastName:      schema.PeopleInstructor.LastName,
		createdAt:     schema.PeopleInstructor.CreatedAt,
		updatedAt:     schema.PeopleInstructor.UpdatedAt,
		studentNumber: "''",
	},
}

// partitionFor resolves role to its table. Table names never come from input.
func partitionFor(role sec.UserRole) (partition, error) {
	p, ok := partitions[role]
	if !ok {
		return partition{}, apperr.ValidationError(MsgInvalidInput)
	}
	return p, nil
}

// columns lists the select expressions in [scanPrincipal] order.
func (p partition) columns() []string {
	return []string{
		p.id, p.email, p.password, p.firstName, p.lastName,
		p.studentNumber, p.createdAt, p.updatedAt,
	}
}

func (p partition) findByEmailQuery() string {
	return fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		strings.Join(p.columns(), ", "), p.table, p.email)
}

func (p partition) findByIDQuery() string {
	return fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(p.columns(), ", "), p.table, p.id)
}

func (p partition) insertQuery() string {
	return fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s, %s`,
		p.table, p.email, p.password, p.firstName, p.lastName,
		p.id, p.createdAt, p.updatedAt,
	)
}

// # Principal Repository

// PostgresPrincipalRepository implements [PrincipalRepository] using pgx.
type PostgresPrincipalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository creates a new PostgreSQL implementation of the PrincipalRepository.
func NewPrincipalRepository(pool *pgxpool.Pool) *PostgresPrincipalRepository {
	return &PostgresPrincipalRepository{pool: pool}
}

/*
FindByEmail retrieves a principal by email inside one partition.

Matching is case-insensitive, mirroring the lower(email) unique index.
*/
func (repository *PostgresPrincipalRepository) FindByEmail(ctx context.Context, role sec.UserRole, email string) (*Principal, error) {
	p, err := partitionFor(role)
	if err != nil {
		return nil, err
	}

	principal, err := scanPrincipal(repository.pool.QueryRow(ctx, p.findByEmailQuery(), email), role)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_principal_find_by_email_failed", MsgPrincipalNotFound)
	}
	return principal, nil
}

/*
FindByID retrieves a principal by primary key inside one partition.
*/
func (repository *PostgresPrincipalRepository) FindByID(ctx context.Context, role sec.UserRole, id int64) (*Principal, error) {
	p, err := partitionFor(role)
	if err != nil {
		return nil, err
	}

	principal, err := scanPrincipal(repository.pool.QueryRow(ctx, p.findByIDQuery(), id), role)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_principal_find_by_id_failed", MsgPrincipalNotFound)
	}
	return principal, nil
}

/*
Create inserts a new principal and hydrates its generated columns.

Returns:
  - error: apperr.Conflict when the email already exists in the partition
*/
func (repository *PostgresPrincipalRepository) Create(ctx context.Context, principal *Principal) error {
	p, err := partitionFor(principal.Role)
	if err != nil {
		return err
	}

	err = repository.pool.QueryRow(ctx, p.insertQuery(),
		principal.Email,
		principal.PasswordHash,
		principal.FirstName,
		principal.LastName,
	).Scan(&principal.ID, &principal.CreatedAt, &principal.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "postgres_principal_create_failed", MsgPrincipalNotFound)
	}
	return nil
}

func scanPrincipal(row pgx.Row, role sec.UserRole) (*Principal, error) {
	principal := &Principal{Role: role}
	err := row.Scan(
		&principal.ID,
		&principal.Email,
		&principal.PasswordHash,
		&principal.FirstName,
		&principal.LastName,
		&principal.StudentNumber,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return principal, nil
}
