package company

import "context"

// Store is the narrow document-store contract the core owns. The
// store has no fuzzy-search capability of its own; all fuzzy
// comparison happens in-process in the Resolver.
//
// Implementations must return deep copies from every read so callers
// never share mutable state with the store, and must apply Insert and
// Replace as whole-document writes.
type Store interface {
	// FindByNameExact matches the display name case-insensitively as
	// a whole string. Returns nil without error when absent.
	FindByNameExact(ctx context.Context, name string) (*CompanyRecord, error)
	// FindByName matches the display name exactly as stored.
	FindByName(ctx context.Context, name string) (*CompanyRecord, error)
	// ListNames returns every display name in insertion order.
	ListNames(ctx context.Context) ([]string, error)

	Insert(ctx context.Context, rec *CompanyRecord) error
	// Replace overwrites the full document for an existing id.
	Replace(ctx context.Context, id string, rec *CompanyRecord) error

	FindAll(ctx context.Context) ([]CompanyRecord, error)
	Count(ctx context.Context) (int, error)
	// FindWhere filters the full record set with an in-process
	// predicate.
	FindWhere(ctx context.Context, pred func(*CompanyRecord) bool) ([]CompanyRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
