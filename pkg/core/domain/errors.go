package domain

import "errors"

var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrCategoryFull       = errors.New("category is full")
	ErrAlreadyMember      = errors.New("site already in category")
	ErrSiteNotFound       = errors.New("site not found")
	ErrHeaderLinkNotFound = errors.New("header link not found")
	ErrSnapshotNotFound   = errors.New("snapshot not found")
	ErrCloudUnavailable   = errors.New("cloud sync is not configured")
	ErrMissingField       = errors.New("required field is empty")
	ErrInvalidValue       = errors.New("invalid value")
)
