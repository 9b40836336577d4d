package errors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidFavourite  = errors.New("favourite URL does not resolve to a portal page")
	ErrInvalidForm       = errors.New("invalid form submission")
	ErrInvalidVote       = errors.New("invalid vote direction")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrMissingLDBToken   = errors.New("live departure board access token is not configured")
)
