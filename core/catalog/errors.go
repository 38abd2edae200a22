package catalog

import "errors"

// Pipeline failure kinds. The HTTP layer maps these onto status codes;
// anything else coming out of the service is a 500.
var (
	// ErrAccessDenied means the caller lacks the admin role claim.
	ErrAccessDenied = errors.New("access denied")

	// ErrValidation means a required field or payload is missing.
	ErrValidation = errors.New("validation failed")

	// ErrAlbumNotFound means the referenced or targeted album row is absent.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrSongNotFound means the targeted song row is absent.
	ErrSongNotFound = errors.New("song not found")

	// ErrUpload means the object store call failed.
	ErrUpload = errors.New("upload failed")

	// ErrDatabase means a relational statement failed.
	ErrDatabase = errors.New("database operation failed")
)
