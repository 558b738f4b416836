package repositories

import (
	"context"

	"eps-clinic/internal/core/domain"
)

// AffiliateRepository defines affiliate persistence operations
type AffiliateRepository interface {
	List(ctx context.Context) ([]domain.Affiliate, error)
	GetByID(ctx context.Context, id string) (*domain.Affiliate, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, aff *domain.Affiliate) error
	Ensure(ctx context.Context) error
}

// SurveyRepository defines survey persistence operations
type SurveyRepository interface {
	List(ctx context.Context) ([]domain.Survey, error)
	Create(ctx context.Context, survey *domain.Survey) error
	Ensure(ctx context.Context) error
}

// UserRepository defines user persistence operations
type UserRepository interface {
	GetByName(ctx context.Context, name string) (*domain.User, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	SetSession(ctx context.Context, name string, active bool) (bool, error)
}

// AppointmentRepository defines appointment persistence operations
type AppointmentRepository interface {
	List(ctx context.Context) ([]domain.Appointment, error)
	ExistsScheduled(ctx context.Context, doctor, date, timeStr string) (bool, error)
	Create(ctx context.Context, appt *domain.Appointment) error
	CancelScheduled(ctx context.Context, id, patient string) (bool, error)
}

// PrescriptionRepository defines prescription persistence operations
type PrescriptionRepository interface {
	List(ctx context.Context) ([]domain.Prescription, error)
	Create(ctx context.Context, presc *domain.Prescription) error
}
