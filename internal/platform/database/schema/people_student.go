// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns used by the SQL repositories.
package schema

// PeopleStudentTable represents the 'people.student' table
type PeopleStudentTable struct {
	Table         string
	ID            string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	StudentNumber string
	CreatedAt     string
	UpdatedAt     string
}

// PeopleStudent is the schema definition for people.student
var PeopleStudent = PeopleStudentTable{
	Table:         "people.student",
	ID:            "id",
	Email:         "email",
	Password:      "passwordhash",
	FirstName:     "firstname",
	LastName:      "lastname",
	StudentNumber: "studentnumber",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
