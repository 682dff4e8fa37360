package account

import "errors"

var (
	ErrUserNotFound       = errors.New("account: user not found")
	ErrInvalidCredentials = errors.New("account: invalid username or password")

	// Storage reports these when a unique or foreign key constraint rejects a write.
	ErrDuplicateUsername = errors.New("account: username already taken")
	ErrDuplicateEmail    = errors.New("account: email already taken")
	ErrDesaNotFound      = errors.New("account: desa does not exist")

	ErrFailedToHashPassword = errors.New("account: failed to hash password")
	ErrFailedToCreateUser   = errors.New("account: failed to create user")
	ErrFailedToUpdateUser   = errors.New("account: failed to update user")
	ErrFailedToLoadUser     = errors.New("account: failed to load user")
)
