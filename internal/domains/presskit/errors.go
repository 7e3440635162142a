package presskit

import "errors"

var (
	ErrPresskitNotFound = errors.New("presskit not found")
	ErrProfileNotFound  = errors.New("owner profile not found")

	// ErrQuotaExceeded fires when a profile already holds as many
	// presskits as its presskit_limit allows.
	ErrQuotaExceeded = errors.New("presskit limit reached")

	ErrSlugTaken = errors.New("public slug already taken")
)
