package services

import (
	"context"

	"eps-clinic/internal/core/domain"
)

// Note: IdentityService implementation is in identity_service.go
// Note: AffiliateService implementation is in affiliate_service.go
// Note: ClinicalService implementation is in clinical_service.go

// UserDirectory is the narrow read-only lookup the clinical service uses
// to authenticate patients and resolve doctors. IdentityService implements
// it; nothing else about the user store leaks across the boundary.
type UserDirectory interface {
	FindUser(ctx context.Context, name string) (*domain.User, error)
}
