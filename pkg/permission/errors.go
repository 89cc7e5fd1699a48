package permission

import "errors"

var (
	// ErrInvalidPermissionFormat is returned when a permission string does not
	// satisfy the 1-3 segment grammar.
	ErrInvalidPermissionFormat = errors.New("permission.invalid_format")
)
