package document

import "errors"

// Error taxonomy for document operations. All of these are produced
// deterministically from input state; store failures are returned as-is.
var (
	ErrNotFound       = errors.New("document not found")
	ErrRoleNotFound   = errors.New("role not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateTitle = errors.New("document already exists")
	ErrAccessDenied   = errors.New("access denied")
)
