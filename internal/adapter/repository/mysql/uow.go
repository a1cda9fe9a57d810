package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/uow"
	"dealerdesk-backend/internal/domain/vehicle"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Vehicles:     &VehicleRepository{db: tx},
		Banks:        &BankRepository{db: tx},
		Clients:      &ClientRepository{db: tx},
		Proposals:    &ProposalRepository{db: tx},
		Reservations: &ReservationRepository{db: tx},
		Simulations:  &SimulationRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinVehicleTx(ctx context.Context, vehicleID string, fn func(r uow.Repos, v *vehicle.Vehicle) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the vehicle row up-front to prevent races
		v, err := r.Vehicles.GetByVehicleIDForUpdate(ctx, vehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return vehicle.ErrNotFound
			}
			return err
		}
		return fn(r, v)
	})
}
