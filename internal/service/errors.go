package service

import "errors"

// Sentinel errors shared across services. The UI layer matches on these to
// decide what to show the user.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("invalid input")
	ErrProtectedCategory  = errors.New("the default category cannot be removed")
	ErrDuplicateCategory  = errors.New("category with this name already exists")
)
