package pricing

import (
	"errors"
	"fmt"
	"sort"

	"dealerdesk-backend/internal/domain/bank"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidTerm     = errors.New("invalid term")
	ErrNoEligibleBanks = errors.New("no eligible banks")
)

const (
	// DefaultDirectTermCap bounds the store's own zero-interest plans.
	DefaultDirectTermCap = 120

	monthsPerYear = 12
	// cetMarkup layers a fixed 15% on the annualized nominal rate as a rough
	// effective-cost estimate. Not a regulatory CET computation.
	cetMarkup = 1.15
	// storeMarginRate is the store's flat margin over the vehicle price.
	storeMarginRate = 0.05
)

type Pricer struct {
	// DirectTermCap is the longest term accepted for direct financing.
	DirectTermCap int
}

func NewPricer(directTermCap int) *Pricer {
	if directTermCap <= 0 {
		directTermCap = DefaultDirectTermCap
	}
	return &Pricer{DirectTermCap: directTermCap}
}

// Price computes the normalized quote for any deal variant. It is pure and
// deterministic: identical input always yields an identical quote.
func (p *Pricer) Price(d Deal) (*Quote, error) {
	switch d := d.(type) {
	case BankDeal:
		return p.priceBank(d)
	case DirectDeal:
		return p.priceDirect(d)
	case CashDeal:
		return p.priceCash(d)
	}
	return nil, fmt.Errorf("unknown deal variant %T", d)
}

func (p *Pricer) priceBank(d BankDeal) (*Quote, error) {
	if err := checkAmounts(d.VehiclePrice, d.DownPayment); err != nil {
		return nil, err
	}
	if d.RequestedTerm < 1 {
		return nil, ErrInvalidTerm
	}
	financed := d.VehiclePrice - d.DownPayment
	if financed <= 0 {
		return nil, ErrInvalidAmount
	}
	if !d.Bank.Eligible() {
		return nil, ErrNoEligibleBanks
	}

	usedTerm, ratePercent := d.Bank.RateTable.Resolve(d.RequestedTerm)
	installment := FinancedInstallment(financed, ratePercent/100, d.RequestedTerm)

	return &Quote{
		DealType:           DealBankFinanced,
		FinancedAmount:     financed,
		InstallmentCount:   d.RequestedTerm,
		InstallmentValue:   installment,
		TotalValue:         installment * float64(d.RequestedTerm),
		UsedTerm:           usedTerm,
		MonthlyRatePercent: ratePercent,
		CETEstimate:        ratePercent * monthsPerYear * cetMarkup,
		VendorCommission:   financed * d.Bank.CommissionPercent / 100,
		StoreMargin:        d.VehiclePrice * storeMarginRate,
	}, nil
}

func (p *Pricer) priceDirect(d DirectDeal) (*Quote, error) {
	if err := checkAmounts(d.VehiclePrice, d.DownPayment); err != nil {
		return nil, err
	}
	if d.TermMonths < 1 || d.TermMonths > p.DirectTermCap {
		return nil, ErrInvalidTerm
	}
	financed := d.VehiclePrice - d.DownPayment
	if financed <= 0 {
		return nil, ErrInvalidAmount
	}

	installment := DirectInstallment(d.VehiclePrice, d.DownPayment, d.TermMonths)
	return &Quote{
		DealType:         DealDirectFinanced,
		FinancedAmount:   financed,
		InstallmentCount: d.TermMonths,
		InstallmentValue: installment,
		TotalValue:       installment * float64(d.TermMonths),
		StoreMargin:      d.VehiclePrice * storeMarginRate,
	}, nil
}

func (p *Pricer) priceCash(d CashDeal) (*Quote, error) {
	if d.VehiclePrice <= 0 || d.CashPrice < 0 {
		return nil, ErrInvalidAmount
	}
	cash := d.CashPrice
	if cash == 0 {
		cash = d.VehiclePrice
	}
	return &Quote{
		DealType:         DealCash,
		InstallmentCount: 1,
		TotalValue:       cash,
	}, nil
}

// CompareBanks prices the same request against every eligible bank and ranks
// the results ascending by installment value; the cheapest is flagged as the
// recommended option. Inactive banks and the direct-financing placeholder are
// excluded up front.
func (p *Pricer) CompareBanks(vehiclePrice, downPayment float64, requestedTerm int, banks []bank.Bank) ([]BankQuote, error) {
	if err := checkAmounts(vehiclePrice, downPayment); err != nil {
		return nil, err
	}
	if requestedTerm < 1 {
		return nil, ErrInvalidTerm
	}

	var out []BankQuote
	for i := range banks {
		b := banks[i]
		if !b.Eligible() {
			continue
		}
		q, err := p.Price(BankDeal{
			Bank:          b,
			VehiclePrice:  vehiclePrice,
			DownPayment:   downPayment,
			RequestedTerm: requestedTerm,
		})
		if err != nil {
			// Invalid amounts/terms fail the whole comparison, not one bank.
			return nil, err
		}
		out = append(out, BankQuote{BankID: b.BankID, BankName: b.Name, Quote: *q})
	}
	if len(out) == 0 {
		return nil, ErrNoEligibleBanks
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quote.InstallmentValue < out[j].Quote.InstallmentValue
	})
	out[0].Recommended = true
	return out, nil
}

func checkAmounts(price, downPayment float64) error {
	if price <= 0 || downPayment < 0 || downPayment > price {
		return ErrInvalidAmount
	}
	return nil
}
