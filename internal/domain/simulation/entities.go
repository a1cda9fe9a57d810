package simulation

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/pricing"
)

var ErrNotFound = errors.New("simulation not found")

// Simulation is a priced quote the user chose to keep. Quotes are ephemeral
// by default; only an explicit save lands here, and a saved simulation can
// later be promoted to a proposal.
type Simulation struct {
	ID           uint64  `gorm:"primaryKey;column:id" json:"-"`
	SimulationID string  `gorm:"size:32;uniqueIndex:ux_simulations_simulation_id_active" json:"simulation_id"`
	VehicleID    string  `gorm:"size:32;index" json:"vehicle_id"`
	VendorID     string  `gorm:"size:32;index" json:"vendor_id"`
	BankID       *string `gorm:"size:32" json:"bank_id,omitempty"`

	DealType         pricing.DealType `gorm:"size:20" json:"deal_type"`
	VehiclePrice     float64          `gorm:"type:decimal(12,2)" json:"vehicle_price"`
	DownPayment      float64          `gorm:"type:decimal(12,2)" json:"down_payment"`
	FinancedAmount   float64          `gorm:"type:decimal(12,2)" json:"financed_amount"`
	InstallmentCount int              `json:"installment_count"`
	InstallmentValue float64          `gorm:"type:decimal(12,2)" json:"installment_value"`
	TotalValue       float64          `gorm:"type:decimal(12,2)" json:"total_value"`
	CETEstimate      float64          `gorm:"type:decimal(8,4)" json:"cet_estimate"`
	VendorCommission float64          `gorm:"type:decimal(12,2)" json:"vendor_commission"`
	StoreMargin      float64          `gorm:"type:decimal(12,2)" json:"store_margin"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Simulation) TableName() string { return "simulations" }
