// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PeopleInstructorTable represents the 'people.instructor' table
type PeopleInstructorTable struct {
	Table      string
	ID         string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Department string
	IsAdmin    string
	CreatedAt  string
	UpdatedAt  string
}

// PeopleInstructor is the schema definition for people.instructor
var PeopleInstructor = PeopleInstructorTable{
	Table:      "people.instructor",
	ID:         "id",
	Email:      "email",
	Password:   "passwordhash",
	FirstName:  "firstname",
	LastName:   "lastname",
	Department: "department",
	IsAdmin:    "isadmin",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}
