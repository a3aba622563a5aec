package domain

import "errors"

var (
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")
	// ErrUserNotFound signals a missing user account.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidGender signals a gender value outside male/female.
	ErrInvalidGender = errors.New("invalid gender")
)
