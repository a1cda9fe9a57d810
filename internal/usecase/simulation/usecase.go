package simulation

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/bank"
	"dealerdesk-backend/internal/domain/pricing"
	"dealerdesk-backend/internal/domain/simulation"
	"dealerdesk-backend/internal/domain/vehicle"
	"dealerdesk-backend/pkg/id"
)

var (
	ErrUnknownDealType = errors.New("unknown deal type")
	ErrBankRequired    = errors.New("bank_id is required for a bank-financed simulation")
)

type Usecase struct {
	vehicles vehicle.Repository
	banks    bank.Repository
	sims     simulation.Repository
	pricer   *pricing.Pricer
	log      *zap.Logger
}

func NewUsecase(vehicles vehicle.Repository, banks bank.Repository, sims simulation.Repository, pricer *pricing.Pricer, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{vehicles: vehicles, banks: banks, sims: sims, pricer: pricer, log: log}
}

// QuoteInput describes a pricing request. VehiclePrice may be given directly
// or looked up from VehicleID; an explicit price wins.
type QuoteInput struct {
	DealType     string  `json:"deal_type"`
	VehicleID    string  `json:"vehicle_id"`
	VehiclePrice float64 `json:"vehicle_price"`
	CashPrice    float64 `json:"cash_price"`
	DownPayment  float64 `json:"down_payment"`
	TermMonths   int     `json:"term_months"`
	VendorID     string  `json:"-"`
}

// QuoteDTO carries either a single quote (direct/cash) or a ranked bank
// comparison. All money fields are rounded for presentation.
type QuoteDTO struct {
	DealType     string              `json:"deal_type"`
	VehicleID    string              `json:"vehicle_id,omitempty"`
	VehiclePrice float64             `json:"vehicle_price"`
	DownPayment  float64             `json:"down_payment"`
	Quote        *pricing.Quote      `json:"quote,omitempty"`
	Options      []pricing.BankQuote `json:"options,omitempty"`
}

// Quote prices the request without persisting anything.
func (u *Usecase) Quote(ctx context.Context, in QuoteInput) (*QuoteDTO, error) {
	dealType := pricing.DealType(in.DealType)
	if !dealType.Valid() {
		return nil, ErrUnknownDealType
	}

	price, err := u.resolvePrice(ctx, in)
	if err != nil {
		return nil, err
	}

	dto := &QuoteDTO{
		DealType:     in.DealType,
		VehicleID:    in.VehicleID,
		VehiclePrice: price,
		DownPayment:  in.DownPayment,
	}

	switch dealType {
	case pricing.DealBankFinanced:
		banks, err := u.banks.List(ctx, true)
		if err != nil {
			return nil, err
		}
		options, err := u.pricer.CompareBanks(price, in.DownPayment, in.TermMonths, banks)
		if err != nil {
			return nil, err
		}
		for i := range options {
			roundQuote(&options[i].Quote)
		}
		dto.Options = options
	case pricing.DealDirectFinanced:
		q, err := u.pricer.Price(pricing.DirectDeal{
			VehiclePrice: price,
			DownPayment:  in.DownPayment,
			TermMonths:   in.TermMonths,
		})
		if err != nil {
			return nil, err
		}
		roundQuote(q)
		dto.Quote = q
	case pricing.DealCash:
		q, err := u.pricer.Price(pricing.CashDeal{VehiclePrice: price, CashPrice: in.CashPrice})
		if err != nil {
			return nil, err
		}
		roundQuote(q)
		dto.Quote = q
	}
	return dto, nil
}

type SaveInput struct {
	QuoteInput
	// BankID selects which compared bank to keep, bank deals only.
	BankID string `json:"bank_id"`
}

type SimulationDTO struct {
	SimulationID     string  `json:"simulation_id"`
	VehicleID        string  `json:"vehicle_id,omitempty"`
	VendorID         string  `json:"vendor_id"`
	BankID           string  `json:"bank_id,omitempty"`
	DealType         string  `json:"deal_type"`
	VehiclePrice     float64 `json:"vehicle_price"`
	DownPayment      float64 `json:"down_payment"`
	FinancedAmount   float64 `json:"financed_amount"`
	InstallmentCount int     `json:"installment_count"`
	InstallmentValue float64 `json:"installment_value"`
	TotalValue       float64 `json:"total_value"`
	CETEstimate      float64 `json:"cet_estimate"`
	VendorCommission float64 `json:"vendor_commission"`
	StoreMargin      float64 `json:"store_margin"`
}

// Save prices the request and persists the chosen quote. Quotes stay
// ephemeral unless they pass through here.
func (u *Usecase) Save(ctx context.Context, in SaveInput) (*SimulationDTO, error) {
	dealType := pricing.DealType(in.DealType)
	if !dealType.Valid() {
		return nil, ErrUnknownDealType
	}

	price, err := u.resolvePrice(ctx, in.QuoteInput)
	if err != nil {
		return nil, err
	}

	var (
		q      *pricing.Quote
		bankID *string
	)
	switch dealType {
	case pricing.DealBankFinanced:
		if in.BankID == "" {
			return nil, ErrBankRequired
		}
		b, err := u.banks.GetByBankID(ctx, in.BankID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, bank.ErrNotFound
			}
			return nil, err
		}
		q, err = u.pricer.Price(pricing.BankDeal{
			Bank:          *b,
			VehiclePrice:  price,
			DownPayment:   in.DownPayment,
			RequestedTerm: in.TermMonths,
		})
		if err != nil {
			return nil, err
		}
		bankID = &b.BankID
	case pricing.DealDirectFinanced:
		q, err = u.pricer.Price(pricing.DirectDeal{
			VehiclePrice: price,
			DownPayment:  in.DownPayment,
			TermMonths:   in.TermMonths,
		})
		if err != nil {
			return nil, err
		}
	case pricing.DealCash:
		q, err = u.pricer.Price(pricing.CashDeal{VehiclePrice: price, CashPrice: in.CashPrice})
		if err != nil {
			return nil, err
		}
	}
	roundQuote(q)

	s := &simulation.Simulation{
		SimulationID:     id.NewID32(),
		VehicleID:        in.VehicleID,
		VendorID:         in.VendorID,
		BankID:           bankID,
		DealType:         dealType,
		VehiclePrice:     price,
		DownPayment:      in.DownPayment,
		FinancedAmount:   q.FinancedAmount,
		InstallmentCount: q.InstallmentCount,
		InstallmentValue: q.InstallmentValue,
		TotalValue:       q.TotalValue,
		CETEstimate:      q.CETEstimate,
		VendorCommission: q.VendorCommission,
		StoreMargin:      q.StoreMargin,
	}
	if err := u.sims.Create(ctx, s); err != nil {
		return nil, err
	}
	u.log.Info("simulation saved",
		zap.String("simulation_id", s.SimulationID),
		zap.String("deal_type", string(s.DealType)),
		zap.String("vendor_id", s.VendorID))

	return simToDTO(s), nil
}

func (u *Usecase) Get(ctx context.Context, simulationID string) (*SimulationDTO, error) {
	s, err := u.sims.GetBySimulationID(ctx, simulationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, simulation.ErrNotFound
		}
		return nil, err
	}
	return simToDTO(s), nil
}

func (u *Usecase) ListByVendor(ctx context.Context, vendorID string) ([]SimulationDTO, error) {
	sims, err := u.sims.ListByVendorID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]SimulationDTO, 0, len(sims))
	for i := range sims {
		out = append(out, *simToDTO(&sims[i]))
	}
	return out, nil
}

func (u *Usecase) resolvePrice(ctx context.Context, in QuoteInput) (float64, error) {
	if in.VehiclePrice > 0 || in.VehicleID == "" {
		return in.VehiclePrice, nil
	}
	v, err := u.vehicles.GetByVehicleID(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, vehicle.ErrNotFound
		}
		return 0, err
	}
	return v.Price, nil
}

func roundQuote(q *pricing.Quote) {
	q.FinancedAmount = pricing.Round2(q.FinancedAmount)
	q.InstallmentValue = pricing.Round2(q.InstallmentValue)
	// Round the total off the rounded installment, so installment times count
	// adds up exactly.
	if q.InstallmentValue > 0 {
		q.TotalValue = pricing.Round2(q.InstallmentValue * float64(q.InstallmentCount))
	} else {
		q.TotalValue = pricing.Round2(q.TotalValue)
	}
	q.CETEstimate = pricing.Round2(q.CETEstimate)
	q.VendorCommission = pricing.Round2(q.VendorCommission)
	q.StoreMargin = pricing.Round2(q.StoreMargin)
}

func simToDTO(s *simulation.Simulation) *SimulationDTO {
	dto := &SimulationDTO{
		SimulationID:     s.SimulationID,
		VehicleID:        s.VehicleID,
		VendorID:         s.VendorID,
		DealType:         string(s.DealType),
		VehiclePrice:     s.VehiclePrice,
		DownPayment:      s.DownPayment,
		FinancedAmount:   s.FinancedAmount,
		InstallmentCount: s.InstallmentCount,
		InstallmentValue: s.InstallmentValue,
		TotalValue:       s.TotalValue,
		CETEstimate:      s.CETEstimate,
		VendorCommission: s.VendorCommission,
		StoreMargin:      s.StoreMargin,
	}
	if s.BankID != nil {
		dto.BankID = *s.BankID
	}
	return dto
}
