package session

import "errors"

var (
	// ErrInvalidCredentials is the single user-facing failure for every
	// resolution miss. Wrong password and unknown identifier deliberately
	// read the same to avoid confirming which accounts exist.
	ErrInvalidCredentials = errors.New("session: invalid credentials")

	// ErrInvalidToken indicates the session token failed validation.
	ErrInvalidToken = errors.New("session: invalid token")
)
