package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	reservationDomain "dealerdesk-backend/internal/domain/reservation"
	"dealerdesk-backend/internal/domain/uow"
	vehicleDomain "dealerdesk-backend/internal/domain/vehicle"
	"dealerdesk-backend/pkg/id"
)

func makeReservation(reservationID, vehicleID string) *reservationDomain.Reservation {
	return &reservationDomain.Reservation{
		ReservationID:   reservationID,
		Number:          "RES-0001",
		VehicleID:       vehicleID,
		ClientID:        id.NewID32(),
		SellerID:        id.NewID32(),
		Status:          reservationDomain.StatusActive,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	vehRepo := NewVehicleRepository(db)
	resRepo := NewReservationRepository(db)

	vehicleID := id.NewID32()
	reservationID := id.NewID32()

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		v := makeVehicle(vehicleID)
		if err := r.Vehicles.Create(ctx, v); err != nil {
			return err
		}
		v.SetStatus(vehicleDomain.StatusReserved, time.Now().UTC())
		if err := r.Vehicles.Save(ctx, v); err != nil {
			return err
		}
		return r.Reservations.Create(ctx, makeReservation(reservationID, vehicleID))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Both writes visible after commit
	gotV, err := vehRepo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		t.Fatalf("vehicle not visible after commit: %v", err)
	}
	if gotV.Status != vehicleDomain.StatusReserved {
		t.Fatalf("vehicle status=%s, want reserved", gotV.Status)
	}
	if _, err := resRepo.GetByReservationID(ctx, reservationID); err != nil {
		t.Fatalf("reservation not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	vehRepo := NewVehicleRepository(db)
	resRepo := NewReservationRepository(db)

	// Seed an available vehicle outside the tx
	v := makeVehicle(id.NewID32())
	if err := vehRepo.Create(ctx, v); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	reservationID := id.NewID32()
	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Reservations.Create(ctx, makeReservation(reservationID, v.VehicleID)); err != nil {
			return err
		}
		v.SetStatus(vehicleDomain.StatusReserved, time.Now().UTC())
		if err := r.Vehicles.Save(ctx, v); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// Neither the hold nor the cascaded status change survives
	if _, err := resRepo.GetByReservationID(ctx, reservationID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected reservation absent after rollback, got %v", err)
	}
	gotV, err := vehRepo.GetByVehicleID(ctx, v.VehicleID)
	if err != nil {
		t.Fatalf("post-rollback GetByVehicleID: %v", err)
	}
	if gotV.Status != vehicleDomain.StatusAvailable {
		t.Fatalf("expected available after rollback, got %s", gotV.Status)
	}
}

func TestGormUoW_WithinVehicleTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	vehRepo := NewVehicleRepository(db)
	resRepo := NewReservationRepository(db)

	seed := makeVehicle(id.NewID32())
	if err := vehRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	reservationID := id.NewID32()
	if err := guow.WithinVehicleTx(ctx, seed.VehicleID, func(r uow.Repos, v *vehicleDomain.Vehicle) error {
		if v == nil || v.VehicleID != seed.VehicleID || v.Status != vehicleDomain.StatusAvailable {
			t.Fatalf("unexpected vehicle passed to fn: %+v", v)
		}
		if err := r.Reservations.Create(ctx, makeReservation(reservationID, v.VehicleID)); err != nil {
			return err
		}
		v.SetStatus(vehicleDomain.StatusReserved, time.Now().UTC())
		return r.Vehicles.Save(ctx, v)
	}); err != nil {
		t.Fatalf("WithinVehicleTx commit err: %v", err)
	}

	gotV, err := vehRepo.GetByVehicleID(ctx, seed.VehicleID)
	if err != nil {
		t.Fatalf("GetByVehicleID post-commit: %v", err)
	}
	if gotV.Status != vehicleDomain.StatusReserved {
		t.Fatalf("vehicle status not updated, got=%s", gotV.Status)
	}
	gotR, err := resRepo.GetActiveByVehicleID(ctx, seed.VehicleID)
	if err != nil {
		t.Fatalf("active reservation missing: %v", err)
	}
	if gotR.ReservationID != reservationID {
		t.Fatalf("unexpected reservation: %+v", gotR)
	}
}

func TestGormUoW_WithinVehicleTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	vehRepo := NewVehicleRepository(db)
	resRepo := NewReservationRepository(db)

	seed := makeVehicle(id.NewID32())
	if err := vehRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	reservationID := id.NewID32()
	sentinel := errors.New("stop")

	_ = guow.WithinVehicleTx(ctx, seed.VehicleID, func(r uow.Repos, v *vehicleDomain.Vehicle) error {
		if err := r.Reservations.Create(ctx, makeReservation(reservationID, v.VehicleID)); err != nil {
			return err
		}
		v.SetStatus(vehicleDomain.StatusReserved, time.Now().UTC())
		if err := r.Vehicles.Save(ctx, v); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	gotV, err := vehRepo.GetByVehicleID(ctx, seed.VehicleID)
	if err != nil {
		t.Fatalf("post-rollback GetByVehicleID: %v", err)
	}
	if gotV.Status != vehicleDomain.StatusAvailable {
		t.Fatalf("expected available after rollback, got %s", gotV.Status)
	}
	if _, err := resRepo.GetByReservationID(ctx, reservationID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected reservation absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinVehicleTx_VehicleNotFound(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinVehicleTx(context.Background(), "ffffffffffffffffffffffffffffffff", func(r uow.Repos, v *vehicleDomain.Vehicle) error {
		t.Fatalf("callback should not run when vehicle missing")
		return nil
	})
	// The store sentinel must not leak past the locking boundary.
	if !errors.Is(err, vehicleDomain.ErrNotFound) {
		t.Fatalf("want vehicle ErrNotFound, got %v", err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("gorm sentinel leaked: %v", err)
	}
}
