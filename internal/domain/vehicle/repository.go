package vehicle

import "context"

type Filter struct {
	Status Status
	Brand  string
}

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	Save(ctx context.Context, v *Vehicle) error
	GetByVehicleID(ctx context.Context, vehicleID string) (*Vehicle, error)
	// GetByVehicleIDForUpdate locks the row for the duration of the
	// surrounding transaction.
	GetByVehicleIDForUpdate(ctx context.Context, vehicleID string) (*Vehicle, error)
	List(ctx context.Context, f Filter) ([]Vehicle, error)
	// ReplacePhotos swaps the ordered photo set atomically.
	ReplacePhotos(ctx context.Context, v *Vehicle, photos []Photo) error
}
