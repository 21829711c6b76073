package githubapi

import "errors"

var (
	// ErrAuth means the credential was rejected. No later call can
	// succeed, so callers should abort the whole crawl.
	ErrAuth = errors.New("github api: authentication failed")

	// ErrQuotaExceeded means the rolling call budget stayed exhausted
	// through every retry attempt.
	ErrQuotaExceeded = errors.New("github api: rate limit quota exceeded")
)
