package vehiclemock

import (
	"context"

	domain "dealerdesk-backend/internal/domain/vehicle"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                  func(ctx context.Context, v *domain.Vehicle) error
	SaveFn                    func(ctx context.Context, v *domain.Vehicle) error
	GetByVehicleIDFn          func(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	GetByVehicleIDForUpdateFn func(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	ListFn                    func(ctx context.Context, f domain.Filter) ([]domain.Vehicle, error)
	ReplacePhotosFn           func(ctx context.Context, v *domain.Vehicle, photos []domain.Photo) error
}

func (m *Repo) Create(ctx context.Context, v *domain.Vehicle) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, v *domain.Vehicle) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, v)
	}
	return nil
}

func (m *Repo) GetByVehicleID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if m.GetByVehicleIDFn != nil {
		return m.GetByVehicleIDFn(ctx, vehicleID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByVehicleIDForUpdate(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if m.GetByVehicleIDForUpdateFn != nil {
		return m.GetByVehicleIDForUpdateFn(ctx, vehicleID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Vehicle, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) ReplacePhotos(ctx context.Context, v *domain.Vehicle, photos []domain.Photo) error {
	if m.ReplacePhotosFn != nil {
		return m.ReplacePhotosFn(ctx, v, photos)
	}
	return nil
}
