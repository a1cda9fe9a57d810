package reservationmock

import (
	"context"

	domain "dealerdesk-backend/internal/domain/reservation"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, r *domain.Reservation) error
	SaveFn                 func(ctx context.Context, r *domain.Reservation) error
	GetByReservationIDFn   func(ctx context.Context, reservationID string) (*domain.Reservation, error)
	GetActiveByVehicleIDFn func(ctx context.Context, vehicleID string) (*domain.Reservation, error)
	ListFn                 func(ctx context.Context) ([]domain.Reservation, error)
	DeleteFn               func(ctx context.Context, r *domain.Reservation) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Reservation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Reservation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByReservationID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	if m.GetByReservationIDFn != nil {
		return m.GetByReservationIDFn(ctx, reservationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveByVehicleID(ctx context.Context, vehicleID string) (*domain.Reservation, error) {
	if m.GetActiveByVehicleIDFn != nil {
		return m.GetActiveByVehicleIDFn(ctx, vehicleID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Reservation, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, r *domain.Reservation) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, r)
	}
	return nil
}
