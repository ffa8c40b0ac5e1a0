package session

import "errors"

var (
	ErrNoRefreshToken = errors.New("no refresh token available")
)
