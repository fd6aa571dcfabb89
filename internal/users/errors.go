package users

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrValidation         = errors.New("validation error")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
