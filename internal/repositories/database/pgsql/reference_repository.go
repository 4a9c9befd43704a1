package pgsql

import (
	"context"
	"fmt"

	"github.com/fofal/erp-backend/internal/apperrors"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// refProbe knows how to check one foreign domain's table: the existence
// query and the activity predicate. Ledger code never reads those tables
// beyond these probes.
type refProbe struct {
	existsQuery string
	activeQuery string
}

var refProbes = map[portsrepo.ReferenceDomain]refProbe{
	portsrepo.DomainEmployees: {
		existsQuery: `SELECT EXISTS (SELECT 1 FROM employes WHERE employe_id = $1);`,
		activeQuery: `SELECT EXISTS (SELECT 1 FROM employes WHERE employe_id = $1 AND statut = 'ACTIF');`,
	},
	portsrepo.DomainProducts: {
		existsQuery: `SELECT EXISTS (SELECT 1 FROM produits WHERE produit_id = $1);`,
		activeQuery: `SELECT EXISTS (SELECT 1 FROM produits WHERE produit_id = $1 AND NOT retire);`,
	},
	portsrepo.DomainParcels: {
		existsQuery: `SELECT EXISTS (SELECT 1 FROM parcelles WHERE parcelle_id = $1);`,
		activeQuery: `SELECT EXISTS (SELECT 1 FROM parcelles WHERE parcelle_id = $1 AND active);`,
	},
	portsrepo.DomainProjects: {
		existsQuery: `SELECT EXISTS (SELECT 1 FROM projets WHERE projet_id = $1);`,
		activeQuery: `SELECT EXISTS (SELECT 1 FROM projets WHERE projet_id = $1 AND statut IN ('PLANIFIE', 'EN_COURS'));`,
	},
}

type PgxReferenceRepository struct {
	pool *pgxpool.Pool
}

// newPgxReferenceRepository creates a repository probing foreign-domain tables.
func newPgxReferenceRepository(pool *pgxpool.Pool) portsrepo.ReferenceReader {
	return &PgxReferenceRepository{pool: pool}
}

var _ portsrepo.ReferenceReader = (*PgxReferenceRepository)(nil)

func (r *PgxReferenceRepository) probe(ctx context.Context, query string, id string) (bool, error) {
	var found bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&found); err != nil {
		return false, apperrors.NewStorageError("failed to probe reference", err)
	}
	return found, nil
}

// Exists reports whether the id resolves in the given domain.
func (r *PgxReferenceRepository) Exists(ctx context.Context, domain portsrepo.ReferenceDomain, id string) (bool, error) {
	probe, ok := refProbes[domain]
	if !ok {
		return false, fmt.Errorf("%w: unknown reference domain %s", apperrors.ErrValidation, domain)
	}
	return r.probe(ctx, probe.existsQuery, id)
}

// IsActive reports whether the referenced entity is in a usable state.
func (r *PgxReferenceRepository) IsActive(ctx context.Context, domain portsrepo.ReferenceDomain, id string) (bool, error) {
	probe, ok := refProbes[domain]
	if !ok {
		return false, fmt.Errorf("%w: unknown reference domain %s", apperrors.ErrValidation, domain)
	}
	return r.probe(ctx, probe.activeQuery, id)
}
