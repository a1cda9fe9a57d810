package mysql

import (
	"context"

	"gorm.io/gorm"

	reservationDomain "dealerdesk-backend/internal/domain/reservation"
)

type ReservationRepository struct{ db *gorm.DB }

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservationDomain.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservationDomain.Reservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ReservationRepository) GetByReservationID(ctx context.Context, reservationID string) (*reservationDomain.Reservation, error) {
	var out reservationDomain.Reservation
	res := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) GetActiveByVehicleID(ctx context.Context, vehicleID string) (*reservationDomain.Reservation, error) {
	var out reservationDomain.Reservation
	res := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND status = ?", vehicleID, reservationDomain.StatusActive).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *ReservationRepository) List(ctx context.Context) ([]reservationDomain.Reservation, error) {
	var out []reservationDomain.Reservation
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *ReservationRepository) Delete(ctx context.Context, res *reservationDomain.Reservation) error {
	return r.db.WithContext(ctx).Delete(res).Error
}
