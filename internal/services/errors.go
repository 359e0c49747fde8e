package services

// Typed service errors. Handlers map these to HTTP status codes in one
// place; anything else becomes a generic 500.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// PolicyError marks a database access-policy misconfiguration
// (Postgres 42P17, recursive policy). Unlike an empty result set this
// is an operator problem, so it is surfaced to the caller instead of
// degrading to zeroed aggregates.
type PolicyError struct{ Message string }

func (e *PolicyError) Error() string { return e.Message }
