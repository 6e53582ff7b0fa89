package tenant

import "errors"

var (
	ErrNotFound            = errors.New("tenant: not found")
	ErrAlreadyExists       = errors.New("tenant: already exists")
	ErrTrialColumnsMissing = errors.New("tenant: trial columns missing")
	ErrRemoteUnavailable   = errors.New("tenant: remote directory unavailable")
)

// ValidationError aggregates every missing or inconsistent field of a
// registration form. Submissions report all problems at once rather than
// failing on the first one.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "tenant: missing required fields"
}
