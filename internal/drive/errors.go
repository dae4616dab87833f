package drive

import "errors"

var (
	// ErrNotFound is returned when a folder or file does not exist for the
	// owner in question.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a folder creation hits the
	// (owner_id, parent_id, name) unique constraint.
	ErrDuplicateName = errors.New("a sibling with that name already exists")

	// ErrFolderNotEmpty rejects deletion of a folder that still has child
	// files or subfolders.
	ErrFolderNotEmpty = errors.New("folder is not empty")

	// ErrQuotaExceeded marks a file that would push the owner past the
	// storage limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrEmptyName rejects blank folder or file names.
	ErrEmptyName = errors.New("name must not be empty")
)
