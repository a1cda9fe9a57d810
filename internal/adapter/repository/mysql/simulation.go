package mysql

import (
	"context"

	"gorm.io/gorm"

	simulationDomain "dealerdesk-backend/internal/domain/simulation"
)

type SimulationRepository struct{ db *gorm.DB }

func NewSimulationRepository(db *gorm.DB) *SimulationRepository {
	return &SimulationRepository{db: db}
}

func (r *SimulationRepository) Create(ctx context.Context, s *simulationDomain.Simulation) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SimulationRepository) GetBySimulationID(ctx context.Context, simulationID string) (*simulationDomain.Simulation, error) {
	var out simulationDomain.Simulation
	res := r.db.WithContext(ctx).Where("simulation_id = ?", simulationID).First(&out)
	return &out, res.Error
}

func (r *SimulationRepository) ListByVendorID(ctx context.Context, vendorID string) ([]simulationDomain.Simulation, error) {
	var out []simulationDomain.Simulation
	res := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
