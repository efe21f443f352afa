package repositories

import "errors"

// Sentinel errors returned by the repositories. Handlers map these to the
// HTTP error taxonomy with errors.Is.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrInvalidID       = errors.New("invalid id format")
	ErrAlreadyReposted = errors.New("post already reposted")
)
