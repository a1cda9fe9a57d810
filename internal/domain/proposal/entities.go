package proposal

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/pricing"
)

var (
	ErrNotFound          = errors.New("proposal not found")
	ErrInvalidTransition = errors.New("invalid proposal status transition")
	ErrPricingMismatch   = errors.New("proposal totals do not match its installments")
)

// SignatureParty selects which signature blob an attach targets.
type SignatureParty string

const (
	PartyClient SignatureParty = "client"
	PartyVendor SignatureParty = "vendor"
)

type Proposal struct {
	ID         uint64  `gorm:"primaryKey;column:id" json:"-"`
	ProposalID string  `gorm:"size:32;uniqueIndex:ux_proposals_proposal_id_active" json:"proposal_id"`
	ClientID   string  `gorm:"size:32;index" json:"client_id"`
	VehicleID  string  `gorm:"size:32;index" json:"vehicle_id"`
	VendorID   string  `gorm:"size:32;index" json:"vendor_id"`
	BankID     *string `gorm:"size:32" json:"bank_id,omitempty"`

	DealType pricing.DealType `gorm:"size:20;index" json:"deal_type"`
	// IsOwnFinancing survives from pre-deal_type rows; AfterFind uses it to
	// backfill DealType once at the store boundary.
	IsOwnFinancing bool `gorm:"column:is_own_financing" json:"-"`

	VehiclePrice     float64 `gorm:"type:decimal(12,2)" json:"vehicle_price"`
	CashPrice        float64 `gorm:"type:decimal(12,2)" json:"cash_price,omitempty"`
	DownPayment      float64 `gorm:"type:decimal(12,2)" json:"down_payment"`
	FinancedAmount   float64 `gorm:"type:decimal(12,2)" json:"financed_amount"`
	InstallmentCount int     `json:"installment_count"`
	InstallmentValue float64 `gorm:"type:decimal(12,2)" json:"installment_value"`
	TotalAmount      float64 `gorm:"type:decimal(12,2)" json:"total_amount"`
	CETEstimate      float64 `gorm:"type:decimal(8,4)" json:"cet_estimate"`
	VendorCommission float64 `gorm:"type:decimal(12,2)" json:"vendor_commission"`
	StoreMargin      float64 `gorm:"type:decimal(12,2)" json:"store_margin"`

	Status          Status    `gorm:"size:16;index;default:'negotiating'" json:"status"`
	StatusUpdatedAt time.Time `gorm:"autoCreateTime" json:"status_updated_at"`

	ClientSignature []byte `gorm:"type:mediumblob" json:"-"`
	VendorSignature []byte `gorm:"type:mediumblob" json:"-"`
	Notes           string `gorm:"type:text" json:"notes"`

	SentAt    *time.Time `json:"sent_at,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	SoldAt    *time.Time `json:"sold_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Proposal) TableName() string { return "proposals" }

// AfterFind normalizes legacy rows that predate the deal_type column, so
// every read site sees a populated discriminator.
func (p *Proposal) AfterFind(*gorm.DB) error {
	if p.DealType == "" {
		p.DealType = InferDealType(p.IsOwnFinancing, p.BankID, p.CashPrice)
	}
	return nil
}

// InferDealType derives the deal type for a legacy record: the own-financing
// flag wins, then a bank reference, then cash.
func InferDealType(isOwnFinancing bool, bankID *string, cashPrice float64) pricing.DealType {
	switch {
	case isOwnFinancing:
		return pricing.DealDirectFinanced
	case bankID != nil && *bankID != "":
		return pricing.DealBankFinanced
	default:
		return pricing.DealCash
	}
}

// ValidatePricing enforces the pricing invariants a proposal must carry:
// financed deals total out to installment times count, cash deals have a
// single zero installment.
func (p *Proposal) ValidatePricing() error {
	switch p.DealType {
	case pricing.DealCash:
		if p.InstallmentCount != 1 || p.InstallmentValue != 0 {
			return ErrPricingMismatch
		}
	case pricing.DealBankFinanced, pricing.DealDirectFinanced:
		want := pricing.Round2(p.InstallmentValue * float64(p.InstallmentCount))
		if pricing.Round2(p.TotalAmount) != want {
			return ErrPricingMismatch
		}
	default:
		return ErrPricingMismatch
	}
	return nil
}

// AttachSignature stores an opaque signature blob; no status restricts when
// a party may sign.
func (p *Proposal) AttachSignature(party SignatureParty, blob []byte) {
	switch party {
	case PartyClient:
		p.ClientSignature = blob
	case PartyVendor:
		p.VendorSignature = blob
	}
}
