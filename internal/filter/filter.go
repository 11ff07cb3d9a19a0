// Package filter builds the optional-criteria predicates behind the user
// search endpoints.
//
// Every supplied criterion must hold for a user to match. String criteria are
// case-insensitive substring tests; the zip code is compared exactly. A filter
// with no criteria matches every user.
package filter

import (
	"strconv"
	"strings"

	"github.com/eaglebank/user-registry/shared/apperror"
	"github.com/eaglebank/user-registry/shared/models"
	"golang.org/x/text/cases"
)

// Field identifies a filterable attribute of a user.
type Field int

const (
	FirstName Field = iota
	MiddleName
	LastName
	Suffix
	Email
	Mobile
	Telephone
	Street
	City
	State
	ZipCode
)

var fieldNames = map[Field]string{
	FirstName:  "firstName",
	MiddleName: "middleName",
	LastName:   "lastName",
	Suffix:     "suffix",
	Email:      "email",
	Mobile:     "mobile",
	Telephone:  "telephone",
	Street:     "street",
	City:       "city",
	State:      "state",
	ZipCode:    "zipCode",
}

func (f Field) String() string {
	return fieldNames[f]
}

// Match is how a condition compares its value with the stored field.
type Match int

const (
	Contains Match = iota
	Equals
)

// Condition is one supplied criterion in storage-neutral form.
type Condition struct {
	Field Field
	Match Match
	Text  string // Contains
	Int   int    // Equals, numeric fields
}

// UserFilter holds the optional criteria. Nil means absent.
type UserFilter struct {
	FirstName  *string
	MiddleName *string
	LastName   *string
	Suffix     *string
	Email      *string
	Mobile     *string
	Telephone  *string
	Street     *string
	City       *string
	State      *string
	ZipCode    *int
}

// ByName builds a filter over the name fields. Empty values are absent.
func ByName(firstName, middleName, lastName, suffix string) UserFilter {
	return UserFilter{
		FirstName:  optional(firstName),
		MiddleName: optional(middleName),
		LastName:   optional(lastName),
		Suffix:     optional(suffix),
	}
}

// ByContact builds a filter over the contact info fields.
func ByContact(email, mobile, telephone string) UserFilter {
	return UserFilter{
		Email:     optional(email),
		Mobile:    optional(mobile),
		Telephone: optional(telephone),
	}
}

// ByAddress builds a filter over the address fields. zipCode is the raw query
// value and must be numeric when present.
func ByAddress(street, city, state, zipCode string) (UserFilter, error) {
	zip, err := ParseZipCode(zipCode)
	if err != nil {
		return UserFilter{}, err
	}
	return UserFilter{
		Street:  optional(street),
		City:    optional(city),
		State:   optional(state),
		ZipCode: zip,
	}, nil
}

// ParseZipCode returns nil for an empty value.
func ParseZipCode(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.New(apperror.ErrInvalidArgument, "zipCode must be numeric, got \""+raw+"\"")
	}
	return &n, nil
}

// Conditions lists the supplied criteria in field order.
func (f UserFilter) Conditions() []Condition {
	var conds []Condition
	texts := []struct {
		field Field
		value *string
	}{
		{FirstName, f.FirstName},
		{MiddleName, f.MiddleName},
		{LastName, f.LastName},
		{Suffix, f.Suffix},
		{Email, f.Email},
		{Mobile, f.Mobile},
		{Telephone, f.Telephone},
		{Street, f.Street},
		{City, f.City},
		{State, f.State},
	}
	for _, t := range texts {
		if t.value != nil {
			conds = append(conds, Condition{Field: t.field, Match: Contains, Text: *t.value})
		}
	}
	if f.ZipCode != nil {
		conds = append(conds, Condition{Field: ZipCode, Match: Equals, Int: *f.ZipCode})
	}
	return conds
}

// IsEmpty reports whether no criterion was supplied.
func (f UserFilter) IsEmpty() bool {
	return len(f.Conditions()) == 0
}

// Matches reports whether u satisfies every supplied criterion.
func (f UserFilter) Matches(u models.User) bool {
	fold := cases.Fold()
	for _, c := range f.Conditions() {
		switch c.Match {
		case Equals:
			if c.Field != ZipCode || u.Address.ZipCode == nil || *u.Address.ZipCode != c.Int {
				return false
			}
		case Contains:
			if !strings.Contains(fold.String(textValue(u, c.Field)), fold.String(c.Text)) {
				return false
			}
		}
	}
	return true
}

func textValue(u models.User, f Field) string {
	switch f {
	case FirstName:
		return u.FirstName
	case MiddleName:
		return u.MiddleName
	case LastName:
		return u.LastName
	case Suffix:
		return u.Suffix
	case Email:
		return u.ContactInfo.Email
	case Mobile:
		return u.ContactInfo.Mobile
	case Telephone:
		return u.ContactInfo.Telephone
	case Street:
		return u.Address.Street
	case City:
		return u.Address.City
	case State:
		return u.Address.State
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
