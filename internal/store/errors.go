package store

import "errors"

// Sentinel errors returned by store operations. The service layer translates
// these into the API error taxonomy.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
)
