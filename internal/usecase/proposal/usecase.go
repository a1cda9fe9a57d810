package proposal

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/bank"
	"dealerdesk-backend/internal/domain/client"
	"dealerdesk-backend/internal/domain/pricing"
	"dealerdesk-backend/internal/domain/proposal"
	"dealerdesk-backend/internal/domain/reservation"
	"dealerdesk-backend/internal/domain/simulation"
	"dealerdesk-backend/internal/domain/uow"
	"dealerdesk-backend/internal/domain/vehicle"
	"dealerdesk-backend/pkg/id"
)

var ErrUnknownDealType = errors.New("unknown deal type")

type Usecase struct {
	proposals proposal.Repository
	vehicles  vehicle.Repository
	banks     bank.Repository
	clients   client.Repository
	sims      simulation.Repository
	uow       uow.UnitOfWork
	pricer    *pricing.Pricer
	log       *zap.Logger
}

func NewUsecase(proposals proposal.Repository, vehicles vehicle.Repository, banks bank.Repository, clients client.Repository, sims simulation.Repository, u uow.UnitOfWork, pricer *pricing.Pricer, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{proposals: proposals, vehicles: vehicles, banks: banks, clients: clients, sims: sims, uow: u, pricer: pricer, log: log}
}

type CreateProposalInput struct {
	ClientID    string  `json:"client_id"`
	VehicleID   string  `json:"vehicle_id"`
	BankID      string  `json:"bank_id"`
	DealType    string  `json:"deal_type"`
	CashPrice   float64 `json:"cash_price"`
	DownPayment float64 `json:"down_payment"`
	TermMonths  int     `json:"term_months"`
	Notes       string  `json:"notes"`
	VendorID    string  `json:"-"`
}

type ProposalDTO struct {
	ProposalID       string     `json:"proposal_id"`
	ClientID         string     `json:"client_id"`
	VehicleID        string     `json:"vehicle_id"`
	VendorID         string     `json:"vendor_id"`
	BankID           string     `json:"bank_id,omitempty"`
	DealType         string     `json:"deal_type"`
	VehiclePrice     float64    `json:"vehicle_price"`
	CashPrice        float64    `json:"cash_price,omitempty"`
	DownPayment      float64    `json:"down_payment"`
	FinancedAmount   float64    `json:"financed_amount"`
	InstallmentCount int        `json:"installment_count"`
	InstallmentValue float64    `json:"installment_value"`
	TotalAmount      float64    `json:"total_amount"`
	CETEstimate      float64    `json:"cet_estimate"`
	VendorCommission float64    `json:"vendor_commission"`
	StoreMargin      float64    `json:"store_margin"`
	Status           string     `json:"status"`
	Notes            string     `json:"notes,omitempty"`
	SentAt           *time.Time `json:"sent_at,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	SoldAt           *time.Time `json:"sold_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Create prices the deal and opens the proposal in negotiating. The price
// snapshot is frozen here; later vehicle price changes do not flow in.
func (u *Usecase) Create(ctx context.Context, in CreateProposalInput) (*ProposalDTO, error) {
	dealType := pricing.DealType(in.DealType)
	if !dealType.Valid() {
		return nil, ErrUnknownDealType
	}
	if in.ClientID == "" || in.VehicleID == "" {
		return nil, errors.New("invalid input")
	}

	if _, err := u.clients.GetByClientID(ctx, in.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, err
	}

	v, err := u.vehicles.GetByVehicleID(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vehicle.ErrNotFound
		}
		return nil, err
	}
	if v.Status == vehicle.StatusSold {
		return nil, vehicle.ErrUnavailable
	}

	var (
		q      *pricing.Quote
		bankID *string
	)
	switch dealType {
	case pricing.DealBankFinanced:
		b, err := u.banks.GetByBankID(ctx, in.BankID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, bank.ErrNotFound
			}
			return nil, err
		}
		q, err = u.pricer.Price(pricing.BankDeal{
			Bank:          *b,
			VehiclePrice:  v.Price,
			DownPayment:   in.DownPayment,
			RequestedTerm: in.TermMonths,
		})
		if err != nil {
			return nil, err
		}
		bankID = &b.BankID
	case pricing.DealDirectFinanced:
		q, err = u.pricer.Price(pricing.DirectDeal{
			VehiclePrice: v.Price,
			DownPayment:  in.DownPayment,
			TermMonths:   in.TermMonths,
		})
		if err != nil {
			return nil, err
		}
	case pricing.DealCash:
		q, err = u.pricer.Price(pricing.CashDeal{VehiclePrice: v.Price, CashPrice: in.CashPrice})
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	installment := pricing.Round2(q.InstallmentValue)
	// The stored total derives from the rounded installment, so the
	// installment-times-count invariant survives rounding.
	total := pricing.Round2(q.TotalValue)
	if installment > 0 {
		total = pricing.Round2(installment * float64(q.InstallmentCount))
	}
	p := &proposal.Proposal{
		ProposalID:       id.NewID32(),
		ClientID:         in.ClientID,
		VehicleID:        in.VehicleID,
		VendorID:         in.VendorID,
		BankID:           bankID,
		DealType:         dealType,
		IsOwnFinancing:   dealType == pricing.DealDirectFinanced,
		VehiclePrice:     v.Price,
		DownPayment:      in.DownPayment,
		FinancedAmount:   pricing.Round2(q.FinancedAmount),
		InstallmentCount: q.InstallmentCount,
		InstallmentValue: installment,
		TotalAmount:      total,
		CETEstimate:      pricing.Round2(q.CETEstimate),
		VendorCommission: pricing.Round2(q.VendorCommission),
		StoreMargin:      pricing.Round2(q.StoreMargin),
		Status:           proposal.StatusNegotiating,
		StatusUpdatedAt:  now,
		Notes:            in.Notes,
	}
	if dealType == pricing.DealCash {
		p.CashPrice = total
	}
	if err := p.ValidatePricing(); err != nil {
		return nil, err
	}

	if err := u.proposals.Create(ctx, p); err != nil {
		return nil, err
	}
	u.log.Info("proposal created",
		zap.String("proposal_id", p.ProposalID),
		zap.String("deal_type", string(p.DealType)),
		zap.String("vehicle_id", p.VehicleID))
	return toDTO(p), nil
}

type PromoteInput struct {
	SimulationID string `json:"simulation_id"`
	ClientID     string `json:"client_id"`
	Notes        string `json:"notes"`
	VendorID     string `json:"-"`
}

// CreateFromSimulation promotes a saved simulation into a proposal for a
// client. The deal is re-priced against current vehicle and bank data; the
// simulation only supplies the deal shape.
func (u *Usecase) CreateFromSimulation(ctx context.Context, in PromoteInput) (*ProposalDTO, error) {
	s, err := u.sims.GetBySimulationID(ctx, in.SimulationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, simulation.ErrNotFound
		}
		return nil, err
	}

	create := CreateProposalInput{
		ClientID:    in.ClientID,
		VehicleID:   s.VehicleID,
		DealType:    string(s.DealType),
		DownPayment: s.DownPayment,
		Notes:       in.Notes,
		VendorID:    in.VendorID,
	}
	if s.BankID != nil {
		create.BankID = *s.BankID
	}
	switch s.DealType {
	case pricing.DealCash:
		create.CashPrice = s.TotalValue
	default:
		create.TermMonths = s.InstallmentCount
	}
	return u.Create(ctx, create)
}

func (u *Usecase) Get(ctx context.Context, proposalID string) (*ProposalDTO, error) {
	p, err := u.getProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

type ListFilter struct {
	Status   string
	ClientID string
	VendorID string
}

func (u *Usecase) List(ctx context.Context, f ListFilter) ([]ProposalDTO, error) {
	all, err := u.proposals.List(ctx, proposal.Filter{
		Status:   proposal.Status(f.Status),
		ClientID: f.ClientID,
		VendorID: f.VendorID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ProposalDTO, 0, len(all))
	for i := range all {
		out = append(out, *toDTO(&all[i]))
	}
	return out, nil
}

// Send moves negotiating -> sent. Pricing is re-validated at the gate so a
// proposal with tampered totals cannot leave the store.
func (u *Usecase) Send(ctx context.Context, proposalID string) (*ProposalDTO, error) {
	return u.transition(ctx, proposalID, proposal.StatusSent, true)
}

func (u *Usecase) Approve(ctx context.Context, proposalID string) (*ProposalDTO, error) {
	return u.transition(ctx, proposalID, proposal.StatusApproved, false)
}

func (u *Usecase) Reject(ctx context.Context, proposalID string) (*ProposalDTO, error) {
	return u.transition(ctx, proposalID, proposal.StatusRejected, false)
}

func (u *Usecase) Cancel(ctx context.Context, proposalID string) (*ProposalDTO, error) {
	return u.transition(ctx, proposalID, proposal.StatusCancelled, false)
}

// FinalizeSale closes an approved proposal as sold and moves the vehicle to
// sold in the same transaction. An active hold on the vehicle converts with
// the sale.
func (u *Usecase) FinalizeSale(ctx context.Context, proposalID string) (*ProposalDTO, error) {
	p, err := u.getProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = u.uow.WithinVehicleTx(ctx, p.VehicleID, func(r uow.Repos, v *vehicle.Vehicle) error {
		locked, err := r.Proposals.GetByProposalIDForUpdate(ctx, p.ProposalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return proposal.ErrNotFound
			}
			return err
		}
		if v.Status == vehicle.StatusSold {
			return vehicle.ErrUnavailable
		}
		if err := locked.ApplyTransition(proposal.StatusSold, now); err != nil {
			return err
		}
		if err := r.Proposals.Save(ctx, locked); err != nil {
			return err
		}

		if hold, err := r.Reservations.GetActiveByVehicleID(ctx, p.VehicleID); err == nil {
			if err := hold.ApplyTransition(reservation.StatusConverted, now); err != nil {
				return err
			}
			if err := r.Reservations.Save(ctx, hold); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		v.SetStatus(vehicle.StatusSold, now)
		if err := r.Vehicles.Save(ctx, v); err != nil {
			return err
		}
		p = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("sale finalized",
		zap.String("proposal_id", p.ProposalID),
		zap.String("vehicle_id", p.VehicleID))
	return toDTO(p), nil
}

// AttachSignature stores a signature blob for one party.
func (u *Usecase) AttachSignature(ctx context.Context, proposalID string, party proposal.SignatureParty, blob []byte) error {
	if party != proposal.PartyClient && party != proposal.PartyVendor {
		return errors.New("unknown signature party")
	}
	if len(blob) == 0 {
		return errors.New("empty signature")
	}
	p, err := u.getProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	p.AttachSignature(party, blob)
	return u.proposals.Save(ctx, p)
}

func (u *Usecase) transition(ctx context.Context, proposalID string, to proposal.Status, checkPricing bool) (*ProposalDTO, error) {
	p, err := u.getProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if checkPricing {
		if err := p.ValidatePricing(); err != nil {
			return nil, err
		}
	}
	if err := p.ApplyTransition(to, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := u.proposals.Save(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

func (u *Usecase) getProposal(ctx context.Context, proposalID string) (*proposal.Proposal, error) {
	p, err := u.proposals.GetByProposalID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, proposal.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func toDTO(p *proposal.Proposal) *ProposalDTO {
	dto := &ProposalDTO{
		ProposalID:       p.ProposalID,
		ClientID:         p.ClientID,
		VehicleID:        p.VehicleID,
		VendorID:         p.VendorID,
		DealType:         string(p.DealType),
		VehiclePrice:     p.VehiclePrice,
		CashPrice:        p.CashPrice,
		DownPayment:      p.DownPayment,
		FinancedAmount:   p.FinancedAmount,
		InstallmentCount: p.InstallmentCount,
		InstallmentValue: p.InstallmentValue,
		TotalAmount:      p.TotalAmount,
		CETEstimate:      p.CETEstimate,
		VendorCommission: p.VendorCommission,
		StoreMargin:      p.StoreMargin,
		Status:           string(p.Status),
		Notes:            p.Notes,
		SentAt:           p.SentAt,
		DecidedAt:        p.DecidedAt,
		SoldAt:           p.SoldAt,
		CreatedAt:        p.CreatedAt,
	}
	if p.BankID != nil {
		dto.BankID = *p.BankID
	}
	return dto
}
