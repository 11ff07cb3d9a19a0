package cqrs

import (
	"github.com/eaglebank/user-registry/internal/filter"
	"github.com/eaglebank/user-registry/internal/paging"
)

// GetUserQuery fetches a single user by ID.
type GetUserQuery struct {
	UserID int64
}

// ListUsersQuery fetches every user, ordered by ID.
type ListUsersQuery struct{}

// ListUsersPageQuery fetches one page of users, ordered by ID.
type ListUsersPageQuery struct {
	Page paging.Request
}

// SearchUsersQuery fetches every user matching Filter, ordered by ID.
type SearchUsersQuery struct {
	Filter filter.UserFilter
}
