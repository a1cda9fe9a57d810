package reservation

import "context"

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	Save(ctx context.Context, r *Reservation) error
	GetByReservationID(ctx context.Context, reservationID string) (*Reservation, error)
	// GetActiveByVehicleID returns the single active hold on a vehicle, if any.
	GetActiveByVehicleID(ctx context.Context, vehicleID string) (*Reservation, error)
	List(ctx context.Context) ([]Reservation, error)
	Delete(ctx context.Context, r *Reservation) error
}
