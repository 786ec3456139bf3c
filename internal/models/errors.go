package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrPhoneNumberNotUnique is returned when a second user is created for
	// a phone number that already has one.
	ErrPhoneNumberNotUnique = errors.New("there already is a user for this phone number")

	// ErrCategoryNameNotUnique is returned when a budget category is created
	// with a name the user already has.
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the user")

	// ErrCategoriesExist is returned when default categories are installed for
	// a user that already has categories. This is an invariant violation, the
	// router only runs onboarding once.
	ErrCategoriesExist = errors.New("user already has budget categories")

	// ErrInvalidAmount is returned when a budget amount does not parse as a
	// non-negative decimal.
	ErrInvalidAmount = errors.New("budget amounts must be non-negative decimals")
)
