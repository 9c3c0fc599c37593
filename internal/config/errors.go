package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// They are sentinels so that callers can match them with errors.Is.
var (
	// ErrNoAPIBaseURL is returned when the API base URL is empty.
	ErrNoAPIBaseURL = errors.New("no API base URL specified")

	// ErrInvalidAPIBaseURL is returned when the API base URL is not an
	// absolute http or https URL.
	ErrInvalidAPIBaseURL = errors.New("invalid API base URL: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRequestDelay is returned when the request delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidRequestDelay = errors.New("invalid request delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrEmptyFileName is returned when an output file name is empty.
	ErrEmptyFileName = errors.New("invalid output file name: must not be empty")

	// ErrInvalidFileName is returned when an output file name contains a
	// directory component. Use the output directory instead.
	ErrInvalidFileName = errors.New("invalid output file name: must not contain a directory")

	// ErrDuplicateFileName is returned when two output files share a name.
	ErrDuplicateFileName = errors.New("invalid output file names: must be distinct")
)
