package query

import (
	"context"

	"github.com/eaglebank/user-registry/internal/filter"
	"github.com/eaglebank/user-registry/internal/paging"
	"github.com/eaglebank/user-registry/shared/cqrs"
	"github.com/eaglebank/user-registry/shared/models"
)

// UserReader is the read side of the user store.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Search(ctx context.Context, f filter.UserFilter) ([]models.User, error)
	FindPage(ctx context.Context, f filter.UserFilter, req paging.Request) (paging.Page[models.User], error)
}

// UserQueryService answers every user lookup. Results are ordered by ID.
type UserQueryService struct {
	readRepo UserReader
}

func NewUserQueryService(readRepo UserReader) *UserQueryService {
	return &UserQueryService{readRepo: readRepo}
}

func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	return s.readRepo.GetByID(ctx, q.UserID)
}

func (s *UserQueryService) ListUsers(ctx context.Context, _ cqrs.ListUsersQuery) ([]models.User, error) {
	return s.readRepo.FindAll(ctx)
}

func (s *UserQueryService) ListUsersPage(ctx context.Context, q cqrs.ListUsersPageQuery) (paging.Page[models.User], error) {
	return s.readRepo.FindPage(ctx, filter.UserFilter{}, q.Page)
}

// SearchUsers returns users matching every supplied criterion; an empty
// filter returns all users.
func (s *UserQueryService) SearchUsers(ctx context.Context, q cqrs.SearchUsersQuery) ([]models.User, error) {
	if q.Filter.IsEmpty() {
		return s.readRepo.FindAll(ctx)
	}
	return s.readRepo.Search(ctx, q.Filter)
}
