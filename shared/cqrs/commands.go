package cqrs

import "github.com/eaglebank/user-registry/shared/models"

type CreateUserCommand struct {
	FirstName   string
	MiddleName  string
	LastName    string
	Suffix      string
	ContactInfo models.ContactInfo
	Address     models.Address
}

// UpdateUserCommand replaces every field of an existing user.
type UpdateUserCommand struct {
	UserID      int64
	FirstName   string
	MiddleName  string
	LastName    string
	Suffix      string
	ContactInfo models.ContactInfo
	Address     models.Address
}

type DeleteUserCommand struct {
	UserID int64
}
