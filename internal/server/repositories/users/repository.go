// Package users contains the user record repository: an interface plus the
// DynamoDB-backed implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/userstorer/internal/server/models"
)

// Repository is the async CRUD surface over user records. Lookup misses
// are reported as common.ErrNotFound; transport and store-side failures
// wrap common.ErrStoreUnavailable. Every operation is a single
// request-response against the store, bounded by the caller's context.
type Repository interface {
	// Save upserts the full record keyed by its id. The caller is
	// responsible for pre-populating ID.
	Save(ctx context.Context, user *models.User) (*models.User, error)

	// FindByID is a direct partition-key lookup.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail queries the email secondary index and returns the first
	// match. Email is unique by invariant, so the first match is the match.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByUsername scans the table with a server-side filter. No index
	// exists for username, so the cost grows with total table size; this
	// is the most expensive operation in the repository.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns one page of users plus an opaque cursor for the next
	// page ("" when the table is exhausted). limit <= 0 means no page
	// limit beyond the store's own.
	List(ctx context.Context, cursor string, limit int32) ([]models.User, string, error)

	// FindAll drains List into memory. Unsuitable for large tables:
	// memory and latency are unbounded.
	FindAll(ctx context.Context) ([]models.User, error)

	// Delete removes the record by its id.
	Delete(ctx context.Context, user *models.User) error

	// ExistsByID reports whether a record with the id exists.
	ExistsByID(ctx context.Context, id string) (bool, error)

	// ExistsByEmail reports whether any record carries the email. This
	// read is the sole email-uniqueness gate; it cannot atomically fence
	// a concurrent write (see UserService.Create).
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
