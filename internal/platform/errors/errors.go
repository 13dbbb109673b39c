package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrProtectedGroup    = errors.New("group is protected")
	ErrMaxDepth          = errors.New("maximum group depth reached")
	ErrCycle             = errors.New("move would create a cycle")
	ErrNoActiveTimer     = errors.New("no active timer")
	ErrActiveTimerExists = errors.New("active timer already exists")
	ErrUserExists        = errors.New("user already exists")
	ErrBadCredentials    = errors.New("bad credentials")
	ErrNotLoggedIn       = errors.New("not logged in")
)
