package repository

import "errors"

// ErrNotFound is returned when a looked-up record does not exist. Services
// translate it into the NOT_FOUND domain error at their boundary.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when creating a user whose email is taken.
var ErrDuplicateEmail = errors.New("email already registered")
