package uow

import (
	"context"

	"dealerdesk-backend/internal/domain/bank"
	"dealerdesk-backend/internal/domain/client"
	"dealerdesk-backend/internal/domain/proposal"
	"dealerdesk-backend/internal/domain/reservation"
	"dealerdesk-backend/internal/domain/simulation"
	"dealerdesk-backend/internal/domain/vehicle"
)

type Repos struct {
	Vehicles     vehicle.Repository
	Banks        bank.Repository
	Clients      client.Repository
	Proposals    proposal.Repository
	Reservations reservation.Repository
	Simulations  simulation.Repository
}

// UnitOfWork binds every repository to one transaction, so an entity status
// change and its cascaded vehicle update commit or roll back together.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the vehicle row first, then pass it in
	WithinVehicleTx(ctx context.Context, vehicleID string, fn func(r Repos, v *vehicle.Vehicle) error) error
}
