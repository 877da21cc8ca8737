package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// Session-level API errors. Either of these at the top level means the
	// whole export is unusable and the dump aborts.
	ErrUnauthorized = fmt.Errorf("access token expired or invalid")
	ErrForbidden    = fmt.Errorf("user not registered in the Spotify Developer Dashboard")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
)
