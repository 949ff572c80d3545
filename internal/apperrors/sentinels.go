package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// Repositories return it raw; services translate it to a coded AleError.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicate indicates a unique-constraint violation on insert.
var ErrDuplicate = errors.New("resource already exists")
