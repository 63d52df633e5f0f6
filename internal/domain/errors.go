package domain

import "errors"

var (
	// ErrEmptyQuery signals a search query that is empty after trimming.
	ErrEmptyQuery = errors.New("empty query")
	// ErrResourceUnavailable signals an unreachable collaborator or an exhausted connection pool.
	ErrResourceUnavailable = errors.New("resource unavailable")
	// ErrCollaboratorFault signals any other storage or dictionary failure during a request.
	ErrCollaboratorFault = errors.New("collaborator fault")
)
