package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/user-registry/internal/filter"
	"github.com/eaglebank/user-registry/internal/paging"
	"github.com/eaglebank/user-registry/shared/models"
)

// UserReadRepository handles all read operations for users. Results are
// always ordered by ID ascending.
type UserReadRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewUserReadRepository(db *sql.DB, dialect Dialect) *UserReadRepository {
	return &UserReadRepository{db: db, dialect: dialect}
}

func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userSelectColumns + `
		FROM users
		WHERE id = ` + r.dialect.Placeholder(1) + ` AND deleted_at IS NULL`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, userNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserReadRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.Search(ctx, filter.UserFilter{})
}

// Search returns every user matching f.
func (r *UserReadRepository) Search(ctx context.Context, f filter.UserFilter) ([]models.User, error) {
	where, args := whereClause(r.dialect, f)
	query := `SELECT ` + userSelectColumns + ` FROM users ` + where + ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}
	return users, nil
}

// FindPage returns one page of the users matching f.
func (r *UserReadRepository) FindPage(ctx context.Context, f filter.UserFilter, req paging.Request) (paging.Page[models.User], error) {
	where, args := whereClause(r.dialect, f)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users `+where, args...).Scan(&total); err != nil {
		return paging.Page[models.User]{}, fmt.Errorf("failed to count users: %w", err)
	}
	if int64(req.Offset()) >= total {
		return paging.NewPage[models.User](nil, req, total), nil
	}

	query := fmt.Sprintf(`SELECT %s FROM users %s ORDER BY id LIMIT %s OFFSET %s`,
		userSelectColumns, where, r.dialect.Placeholder(len(args)+1), r.dialect.Placeholder(len(args)+2))
	rows, err := r.db.QueryContext(ctx, query, append(args, req.Limit(), req.Offset())...)
	if err != nil {
		return paging.Page[models.User]{}, fmt.Errorf("failed to page users: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		return paging.Page[models.User]{}, fmt.Errorf("failed to scan users: %w", err)
	}
	return paging.NewPage(users, req, total), nil
}
