package domain

import "fmt"

// Gender is the declared user gender. It drives recommendation
// post-filtering only, never personalization elsewhere.
type Gender string

const (
	// GenderMale marks a user shown male-coded and unisex products.
	GenderMale Gender = "male"
	// GenderFemale marks a user shown female-coded and unisex products.
	GenderFemale Gender = "female"
)

// ParseGender validates a raw gender string.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
}

// User is a storefront account. Authentication lives outside this service;
// users are read-only records here.
type User struct {
	id       int64
	username string
	gender   Gender
}

// NewUser creates a User.
func NewUser(id int64, username string, gender Gender) User {
	return User{id: id, username: username, gender: gender}
}

// ID returns the user identifier.
func (u User) ID() int64 { return u.id }

// Username returns the login name.
func (u User) Username() string { return u.username }

// Gender returns the declared gender.
func (u User) Gender() Gender { return u.gender }
