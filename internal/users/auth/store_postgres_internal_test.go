// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/uniportal/internal/platform/apperr"
	"github.com/taibuivan/uniportal/internal/platform/sec"
)

// rowValues feeds scanPrincipal the way pgx does, one value per destination.
type rowValues []any

func (r rowValues) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return assert.AnError
	}
	for i, value := range r {
		switch target := dest[i].(type) {
		case *int64:
			*target = value.(int64)
		case *string:
			*target = value.(string)
		case *time.Time:
			*target = value.(time.Time)
		}
	}
	return nil
}

/*
TestPartition_Queries verifies the role picks the table and the student
number expression.
*/
func TestPartition_Queries(t *testing.T) {
	student, err := partitionFor(sec.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, email, passwordhash, firstname, lastname, COALESCE(studentnumber, ''), createdat, updatedat "+
			"FROM people.student WHERE lower(email) = lower($1)",
		student.findByEmailQuery())
	assert.Equal(t,
		"SELECT id, email, passwordhash, firstname, lastname, COALESCE(studentnumber, ''), createdat, updatedat "+
			"FROM people.student WHERE id = $1",
		student.findByIDQuery())

	instructor, err := partitionFor(sec.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, email, passwordhash, firstname, lastname, '', createdat, updatedat "+
			"FROM people.instructor WHERE lower(email) = lower($1)",
		instructor.findByEmailQuery())
	assert.Equal(t,
		"INSERT INTO people.instructor (email, passwordhash, firstname, lastname) VALUES ($1, $2, $3, $4) "+
			"RETURNING id, createdat, updatedat",
		instructor.insertQuery())
}

/*
TestPartition_RejectsOtherRoles verifies table names never come from an unknown role.
*/
func TestPartition_RejectsOtherRoles(t *testing.T) {
	for _, role := range []sec.UserRole{sec.RoleAdmin, "", "student; DROP TABLE people.student"} {
		_, err := partitionFor(role)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), role)
	}
}

/*
TestScanPrincipal verifies every selected column has a scan destination and
the partition role is stamped on the result.
*/
func TestScanPrincipal(t *testing.T) {
	created := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	for role, studentNumber := range map[sec.UserRole]string{sec.RoleStudent: "21004512", sec.RoleInstructor: ""} {
		p, err := partitionFor(role)
		require.NoError(t, err)

		row := rowValues{int64(4), "ines.martin@univ.fr", "$2a$12$hash", "Inès", "Martin", studentNumber, created, created}
		require.Len(t, p.columns(), len(row))

		principal, err := scanPrincipal(row, role)
		require.NoError(t, err)
		assert.Equal(t, int64(4), principal.ID)
		assert.Equal(t, studentNumber, principal.StudentNumber)
		assert.Equal(t, role, principal.Role)
		assert.Equal(t, created, principal.CreatedAt)
	}
}
