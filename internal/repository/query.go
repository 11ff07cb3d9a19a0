package repository

import (
	"database/sql"
	"strings"

	"github.com/eaglebank/user-registry/internal/filter"
	"github.com/eaglebank/user-registry/shared/models"
)

const userSelectColumns = `id, first_name, middle_name, last_name, suffix,
		email, mobile, telephone, street, city, state, zip_code`

var filterColumns = map[filter.Field]string{
	filter.FirstName:  "first_name",
	filter.MiddleName: "middle_name",
	filter.LastName:   "last_name",
	filter.Suffix:     "suffix",
	filter.Email:      "email",
	filter.Mobile:     "mobile",
	filter.Telephone:  "telephone",
	filter.Street:     "street",
	filter.City:       "city",
	filter.State:      "state",
	filter.ZipCode:    "zip_code",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause compiles f into a WHERE clause over live rows. Placeholders
// are numbered from 1.
func whereClause(d Dialect, f filter.UserFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	var args []any
	for _, c := range f.Conditions() {
		column := filterColumns[c.Field]
		switch c.Match {
		case filter.Equals:
			args = append(args, c.Int)
			conds = append(conds, column+" = "+d.Placeholder(len(args)))
		case filter.Contains:
			args = append(args, "%"+likeEscaper.Replace(c.Text)+"%")
			conds = append(conds, d.Fold(column)+" LIKE "+d.Fold(d.Placeholder(len(args)))+` ESCAPE '\'`)
		}
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var zip sql.NullInt64
	err := row.Scan(
		&u.ID, &u.FirstName, &u.MiddleName, &u.LastName, &u.Suffix,
		&u.ContactInfo.Email, &u.ContactInfo.Mobile, &u.ContactInfo.Telephone,
		&u.Address.Street, &u.Address.City, &u.Address.State, &zip,
	)
	if err != nil {
		return nil, err
	}
	if zip.Valid {
		n := int(zip.Int64)
		u.Address.ZipCode = &n
	}
	return &u, nil
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	defer rows.Close()
	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
