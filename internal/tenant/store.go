package tenant

import "context"

// Directory describes the hosted organization table this service reads and
// writes. Implementations live in internal/store/pg.
type Directory interface {
	// FindByEmail resolves an organization whose email or contact email
	// equals the identifier. Returns ErrNotFound when no row matches.
	FindByEmail(ctx context.Context, identifier string) (*Organization, error)

	// Insert writes the record including the subscription-trial columns.
	// Deployments whose table predates those columns return
	// ErrTrialColumnsMissing, in which case callers retry with InsertLegacy.
	Insert(ctx context.Context, org *Organization) error

	// InsertLegacy writes the record without the trial columns.
	InsertLegacy(ctx context.Context, org *Organization) error
}

// Cache is the slice of the local mirror that onboarding needs.
// internal/store/local implements it.
type Cache interface {
	// Organizations returns the cached organization list in insertion order.
	Organizations(ctx context.Context) ([]Organization, error)

	// AppendOrganization adds a record to the cached list. Identifiers must
	// be unique within the list; a duplicate returns ErrAlreadyExists.
	AppendOrganization(ctx context.Context, org Organization) error

	// UpsertOrganization inserts or replaces the record with the same
	// identifier, preserving list order on replace.
	UpsertOrganization(ctx context.Context, org Organization) error
}
