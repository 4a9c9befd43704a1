package services

import (
	"context"

	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
)

// ReferenceValidator checks foreign-domain ids before they are embedded in
// ledger or finance records. Failures carry ErrReference naming the domain
// and id; a dangling reference is never silently nulled.
type ReferenceValidator interface {
	// EnsureExists fails with ErrReference if the id does not resolve.
	EnsureExists(ctx context.Context, domain portsrepo.ReferenceDomain, id string) error

	// EnsureActive fails with ErrReference if the id does not resolve or the
	// entity is not in a usable state.
	EnsureActive(ctx context.Context, domain portsrepo.ReferenceDomain, id string) error
}
