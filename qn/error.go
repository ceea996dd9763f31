package qn

import "github.com/ztrue/tracerr"

// Precondition failures reported by mutating handlers. Store failures from
// gorm are wrapped by tracerr and passed through unchanged.
var (
	// ErrNotFound raises when a token, group or user lookup yields nothing.
	ErrNotFound = tracerr.New("record not found")

	// ErrAlreadyExists raises when creating a token whose normalized name
	// exists, or a group/user with a taken name.
	ErrAlreadyExists = tracerr.New("record already exists")

	// ErrVetoed raises when a registered filter hook aborts the operation
	// before any store write.
	ErrVetoed = tracerr.New("operation vetoed")
)
