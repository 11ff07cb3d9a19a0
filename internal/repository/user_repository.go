package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/eaglebank/user-registry/shared/apperror"
	"github.com/eaglebank/user-registry/shared/models"
	"github.com/lib/pq"
)

// UserWriteRepository handles all state-mutating operations for users.
type UserWriteRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewUserWriteRepository(db *sql.DB, dialect Dialect) *UserWriteRepository {
	return &UserWriteRepository{db: db, dialect: dialect}
}

// Create inserts user and sets its store-assigned ID.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (first_name, middle_name, last_name, suffix,
			email, mobile, telephone, street, city, state, zip_code)
		VALUES (` + r.placeholders(1, 11) + `)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.FirstName, user.MiddleName, user.LastName, user.Suffix,
		user.ContactInfo.Email, user.ContactInfo.Mobile, user.ContactInfo.Telephone,
		user.Address.Street, user.Address.City, user.Address.State, nullInt(user.Address.ZipCode),
	).Scan(&user.ID)
	if err != nil {
		return translateWriteError("failed to create user", err)
	}
	return nil
}

func (r *UserWriteRepository) Update(ctx context.Context, user *models.User) error {
	p := r.dialect.Placeholder
	query := `
		UPDATE users
		SET first_name = ` + p(1) + `, middle_name = ` + p(2) + `, last_name = ` + p(3) + `, suffix = ` + p(4) + `,
			email = ` + p(5) + `, mobile = ` + p(6) + `, telephone = ` + p(7) + `,
			street = ` + p(8) + `, city = ` + p(9) + `, state = ` + p(10) + `, zip_code = ` + p(11) + `
		WHERE id = ` + p(12) + ` AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		user.FirstName, user.MiddleName, user.LastName, user.Suffix,
		user.ContactInfo.Email, user.ContactInfo.Mobile, user.ContactInfo.Telephone,
		user.Address.Street, user.Address.City, user.Address.State, nullInt(user.Address.ZipCode),
		user.ID,
	)
	if err != nil {
		return translateWriteError("failed to update user", err)
	}
	return requireRow(result, user.ID)
}

// Delete soft-deletes the user; deleted users are invisible to every read.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ` + r.dialect.Placeholder(1) + ` AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRow(result, id)
}

func (r *UserWriteRepository) placeholders(from, to int) string {
	ps := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		ps = append(ps, r.dialect.Placeholder(i))
	}
	return strings.Join(ps, ", ")
}

func requireRow(result sql.Result, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return userNotFound(id)
	}
	return nil
}

// translateWriteError turns Postgres data exceptions caused by client input
// into invalid-request-body errors.
func translateWriteError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "22" {
		return apperror.New(apperror.ErrInvalidRequestBody, pqErr.Message)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func userNotFound(id int64) error {
	return apperror.New(apperror.ErrNotFound, fmt.Sprintf("user with id %d not found", id))
}
