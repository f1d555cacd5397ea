package domain

import (
	"strings"
	"time"
)

// User represents a registered account.
//
// HashedPassword is empty for accounts provisioned through an external
// identity provider; such accounts cannot log in with a local password.
type User struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	HashedPassword     string    `json:"-"` // never expose the password hash
	IdentityProviderID string    `json:"-"` // set only for externally provisioned accounts
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserPatch holds the fields of a User that may be updated in place.
// Nil fields are left unchanged.
type UserPatch struct {
	Name           *string
	HashedPassword *string
}

// NewUser creates a User with the given email and display name.
// The ID and timestamps are populated by the store on create.
// The caller is responsible for hashing and assigning the password.
func NewUser(email, name string) (*User, error) {
	u := &User{
		Email: strings.ToLower(strings.TrimSpace(email)),
		Name:  strings.TrimSpace(name),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// HasLocalPassword reports whether the account can authenticate with a password.
func (u *User) HasLocalPassword() bool {
	return u.HashedPassword != ""
}

// Validate checks that the User has well-formed data.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// validEmailFormat performs a minimal structural check: one '@' with a dotted
// domain after it. Full RFC 5322 validation happens at the API boundary.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
