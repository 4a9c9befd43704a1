package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fofal/erp-backend/internal/apperrors"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/middleware"
)

// referenceService validates foreign-domain ids against the owning modules'
// tables before they are embedded in ledger or finance records.
type referenceService struct {
	refRepo portsrepo.ReferenceReader
}

// NewReferenceService creates a new ReferenceValidator.
func NewReferenceService(refRepo portsrepo.ReferenceReader) portssvc.ReferenceValidator {
	return &referenceService{refRepo: refRepo}
}

var _ portssvc.ReferenceValidator = (*referenceService)(nil)

func (s *referenceService) EnsureExists(ctx context.Context, domain portsrepo.ReferenceDomain, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id for domain %s", apperrors.ErrReference, domain)
	}
	exists, err := s.refRepo.Exists(ctx, domain, id)
	if err != nil {
		return fmt.Errorf("failed to check reference %s/%s: %w", domain, id, err)
	}
	if !exists {
		middleware.GetLoggerFromCtx(ctx).Warn("Dangling cross-domain reference", slog.String("domain", string(domain)), slog.String("id", id))
		return fmt.Errorf("%w: %s %s does not exist", apperrors.ErrReference, domain, id)
	}
	return nil
}

func (s *referenceService) EnsureActive(ctx context.Context, domain portsrepo.ReferenceDomain, id string) error {
	if err := s.EnsureExists(ctx, domain, id); err != nil {
		return err
	}
	active, err := s.refRepo.IsActive(ctx, domain, id)
	if err != nil {
		return fmt.Errorf("failed to check reference state %s/%s: %w", domain, id, err)
	}
	if !active {
		return fmt.Errorf("%w: %s %s is not active", apperrors.ErrReference, domain, id)
	}
	return nil
}
