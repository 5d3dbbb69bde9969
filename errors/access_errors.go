package errors

import "errors"

var (
	ErrDatabaseOperation    = errors.New("database operation failed")
	ErrObjectNotFound       = errors.New("information object not found")
	ErrInvalidAccessRequest = errors.New("invalid access request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInternalServer       = errors.New("internal server error")

	ErrAuditUnavailable = errors.New("audit store unavailable")
)
