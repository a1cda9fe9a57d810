package simulationmock

import (
	"context"

	domain "dealerdesk-backend/internal/domain/simulation"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, s *domain.Simulation) error
	GetBySimulationIDFn func(ctx context.Context, simulationID string) (*domain.Simulation, error)
	ListByVendorIDFn    func(ctx context.Context, vendorID string) ([]domain.Simulation, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Simulation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetBySimulationID(ctx context.Context, simulationID string) (*domain.Simulation, error) {
	if m.GetBySimulationIDFn != nil {
		return m.GetBySimulationIDFn(ctx, simulationID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByVendorID(ctx context.Context, vendorID string) ([]domain.Simulation, error) {
	if m.ListByVendorIDFn != nil {
		return m.ListByVendorIDFn(ctx, vendorID)
	}
	return nil, nil
}
