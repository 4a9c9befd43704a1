package repositories

import "context"

// ReferenceDomain names a bounded context owning entities that ledger and
// finance records reference by id.
type ReferenceDomain string

const (
	DomainEmployees ReferenceDomain = "employes"
	DomainProducts  ReferenceDomain = "produits"
	DomainParcels   ReferenceDomain = "parcelles"
	DomainProjects  ReferenceDomain = "projets"
)

// ReferenceReader probes foreign-domain entities. Each owning module exposes
// existence and activity; this core never inspects their rows further.
type ReferenceReader interface {
	// Exists reports whether the id resolves in the given domain.
	Exists(ctx context.Context, domain ReferenceDomain, id string) (bool, error)

	// IsActive reports whether the referenced entity is in a usable state
	// (e.g. an employee not suspended, a product not retired).
	IsActive(ctx context.Context, domain ReferenceDomain, id string) (bool, error)
}
