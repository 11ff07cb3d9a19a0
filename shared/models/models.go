package models

// ContactInfo is embedded in User and has no lifecycle of its own.
type ContactInfo struct {
	Email     string `json:"email" validate:"omitempty,email"`
	Mobile    string `json:"mobile"`
	Telephone string `json:"telephone"`
}

// Address is embedded in User. ZipCode is nil when unknown.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode *int   `json:"zipCode"`
}

type User struct {
	ID          int64       `json:"id"`
	FirstName   string      `json:"firstName"`
	MiddleName  string      `json:"middleName"`
	LastName    string      `json:"lastName"`
	Suffix      string      `json:"suffix"`
	ContactInfo ContactInfo `json:"contactInfo"`
	Address     Address     `json:"address"`
}
