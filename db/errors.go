package db

import "errors"

// Expected business-rule failures. Controllers translate these into HTTP
// status codes; anything else coming out of the repo is a store error.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrBookNotFound    = errors.New("book not found")
	ErrRecordNotFound  = errors.New("borrow record not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrNotAvailable    = errors.New("no copies available")
	ErrNotEligible     = errors.New("user is not approved to borrow")
	ErrAlreadyBorrowed = errors.New("book already borrowed by this user")
	ErrNoActiveBorrow  = errors.New("no active borrow for this book")
)
