package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/reservation"
	"dealerdesk-backend/internal/domain/uow"
	"dealerdesk-backend/internal/domain/vehicle"
	"dealerdesk-backend/pkg/id"
)

type Usecase struct {
	repo reservation.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r reservation.Repository, u uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: u}
}

type CreateReservationInput struct {
	VehicleID string `json:"vehicle_id"`
	ClientID  string `json:"client_id"`
	SellerID  string `json:"-"`
}

type ReservationDTO struct {
	ReservationID string    `json:"reservation_id"`
	Number        string    `json:"number"`
	VehicleID     string    `json:"vehicle_id"`
	ClientID      string    `json:"client_id"`
	SellerID      string    `json:"seller_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Create places a hold on a vehicle. The hold and the vehicle's move to
// reserved commit in one transaction; a vehicle that is not available
// rejects the hold.
func (u *Usecase) Create(ctx context.Context, in CreateReservationInput) (*ReservationDTO, error) {
	if in.VehicleID == "" || in.ClientID == "" {
		return nil, errors.New("invalid input")
	}

	rid := id.NewID32()
	res := &reservation.Reservation{
		ReservationID:   rid,
		Number:          reservationNumber(rid),
		VehicleID:       in.VehicleID,
		ClientID:        in.ClientID,
		SellerID:        in.SellerID,
		Status:          reservation.StatusActive,
		StatusUpdatedAt: time.Now().UTC(),
	}

	err := u.uow.WithinVehicleTx(ctx, in.VehicleID, func(r uow.Repos, v *vehicle.Vehicle) error {
		if v.Status != vehicle.StatusAvailable {
			return vehicle.ErrUnavailable
		}
		if err := r.Reservations.Create(ctx, res); err != nil {
			return err
		}
		v.SetStatus(vehicle.StatusReserved, time.Now().UTC())
		return r.Vehicles.Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(res), nil
}

func (u *Usecase) Get(ctx context.Context, reservationID string) (*ReservationDTO, error) {
	res, err := u.repo.GetByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reservation.ErrNotFound
		}
		return nil, err
	}
	return toDTO(res), nil
}

func (u *Usecase) List(ctx context.Context) ([]ReservationDTO, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ReservationDTO, 0, len(all))
	for i := range all {
		out = append(out, *toDTO(&all[i]))
	}
	return out, nil
}

// Convert closes the hold as a sale: reservation goes converted and the
// vehicle goes sold, atomically.
func (u *Usecase) Convert(ctx context.Context, reservationID string) (*ReservationDTO, error) {
	return u.transition(ctx, reservationID, reservation.StatusConverted, vehicle.StatusSold)
}

// Cancel releases the hold. The vehicle returns to available only when it is
// still reserved; a vehicle sold through another flow keeps its status.
func (u *Usecase) Cancel(ctx context.Context, reservationID string) (*ReservationDTO, error) {
	return u.transition(ctx, reservationID, reservation.StatusCancelled, vehicle.StatusAvailable)
}

// Delete soft-deletes the reservation. An active hold is released first, so
// deletion behaves like a cancel followed by removal.
func (u *Usecase) Delete(ctx context.Context, reservationID string) error {
	res, err := u.repo.GetByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reservation.ErrNotFound
		}
		return err
	}

	if res.Status != reservation.StatusActive {
		return u.repo.Delete(ctx, res)
	}

	return u.uow.WithinVehicleTx(ctx, res.VehicleID, func(r uow.Repos, v *vehicle.Vehicle) error {
		if err := res.ApplyTransition(reservation.StatusCancelled, time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Reservations.Delete(ctx, res); err != nil {
			return err
		}
		if v.Status == vehicle.StatusReserved {
			v.SetStatus(vehicle.StatusAvailable, time.Now().UTC())
			return r.Vehicles.Save(ctx, v)
		}
		return nil
	})
}

func (u *Usecase) transition(ctx context.Context, reservationID string, to reservation.Status, vehicleTo vehicle.Status) (*ReservationDTO, error) {
	res, err := u.repo.GetByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reservation.ErrNotFound
		}
		return nil, err
	}

	err = u.uow.WithinVehicleTx(ctx, res.VehicleID, func(r uow.Repos, v *vehicle.Vehicle) error {
		if err := res.ApplyTransition(to, time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Reservations.Save(ctx, res); err != nil {
			return err
		}
		// Releasing a hold never reverts a vehicle sold through another flow.
		if vehicleTo == vehicle.StatusAvailable && v.Status != vehicle.StatusReserved {
			return nil
		}
		v.SetStatus(vehicleTo, time.Now().UTC())
		return r.Vehicles.Save(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(res), nil
}

// reservationNumber derives the short human-facing code from the id.
func reservationNumber(reservationID string) string {
	return fmt.Sprintf("RES-%s", strings.ToUpper(reservationID[:8]))
}

func toDTO(res *reservation.Reservation) *ReservationDTO {
	return &ReservationDTO{
		ReservationID: res.ReservationID,
		Number:        res.Number,
		VehicleID:     res.VehicleID,
		ClientID:      res.ClientID,
		SellerID:      res.SellerID,
		Status:        string(res.Status),
		CreatedAt:     res.CreatedAt,
	}
}
