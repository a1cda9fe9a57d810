package simulation

import "context"

type Repository interface {
	Create(ctx context.Context, s *Simulation) error
	GetBySimulationID(ctx context.Context, simulationID string) (*Simulation, error)
	ListByVendorID(ctx context.Context, vendorID string) ([]Simulation, error)
}
