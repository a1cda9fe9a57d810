package pricing

import (
	"errors"
	"math"
	"testing"

	"dealerdesk-backend/internal/domain/bank"
)

func testBank(bankID, name string, monthlyPercent, commissionPercent float64) bank.Bank {
	return bank.Bank{
		BankID:            bankID,
		Name:              name,
		Active:            true,
		CommissionPercent: commissionPercent,
		RateTable: &bank.RateTable{
			M12: monthlyPercent, M24: monthlyPercent, M36: monthlyPercent,
			M48: monthlyPercent, M60: monthlyPercent,
		},
	}
}

func TestPrice_CashDeal(t *testing.T) {
	p := NewPricer(0)

	q, err := p.Price(CashDeal{VehiclePrice: 50_000})
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.InstallmentValue != 0 || q.InstallmentCount != 1 || q.TotalValue != 50_000 || q.FinancedAmount != 0 {
		t.Fatalf("unexpected cash quote: %+v", q)
	}
	if q.VendorCommission != 0 || q.StoreMargin != 0 || q.CETEstimate != 0 {
		t.Fatalf("cash deal carries no commission/margin/cet: %+v", q)
	}

	// Explicit discounted cash price wins over vehicle price.
	q, err = p.Price(CashDeal{VehiclePrice: 50_000, CashPrice: 47_500})
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.TotalValue != 47_500 {
		t.Fatalf("cash total = %v, want 47500", q.TotalValue)
	}
}

func TestPrice_DirectDeal(t *testing.T) {
	p := NewPricer(0)

	q, err := p.Price(DirectDeal{VehiclePrice: 60_000, DownPayment: 10_000, TermMonths: 10})
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.InstallmentValue != 5_000 {
		t.Fatalf("installment = %v, want 5000", q.InstallmentValue)
	}
	if q.TotalValue != 50_000 {
		t.Fatalf("total = %v, want 50000", q.TotalValue)
	}
	if q.FinancedAmount != 50_000 {
		t.Fatalf("financed = %v, want 50000", q.FinancedAmount)
	}
	if q.CETEstimate != 0 || q.VendorCommission != 0 {
		t.Fatalf("direct deal has no cet/commission: %+v", q)
	}
	if q.StoreMargin != 60_000*0.05 {
		t.Fatalf("margin = %v, want %v", q.StoreMargin, 60_000*0.05)
	}
}

func TestPrice_DirectDeal_TermCap(t *testing.T) {
	p := NewPricer(0) // default cap 120

	if _, err := p.Price(DirectDeal{VehiclePrice: 60_000, DownPayment: 0, TermMonths: 121}); !errors.Is(err, ErrInvalidTerm) {
		t.Fatalf("term above cap: got %v, want ErrInvalidTerm", err)
	}
	if _, err := p.Price(DirectDeal{VehiclePrice: 60_000, DownPayment: 0, TermMonths: 120}); err != nil {
		t.Fatalf("term at cap should price: %v", err)
	}

	loose := NewPricer(240)
	if _, err := loose.Price(DirectDeal{VehiclePrice: 60_000, DownPayment: 0, TermMonths: 200}); err != nil {
		t.Fatalf("configured cap not honored: %v", err)
	}
}

func TestPrice_BankDeal(t *testing.T) {
	p := NewPricer(0)
	b := testBank("b1", "Banco Um", 1.5, 2.0)

	q, err := p.Price(BankDeal{Bank: b, VehiclePrice: 50_000, DownPayment: 10_000, RequestedTerm: 48})
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.FinancedAmount != 40_000 {
		t.Fatalf("financed = %v, want 40000", q.FinancedAmount)
	}
	want := FinancedInstallment(40_000, 0.015, 48)
	if math.Abs(q.InstallmentValue-want) > 1e-9 {
		t.Fatalf("installment = %v, want %v", q.InstallmentValue, want)
	}
	if math.Abs(q.TotalValue-want*48) > 1e-9 {
		t.Fatalf("total = %v, want installment*term", q.TotalValue)
	}
	if q.UsedTerm != 48 || q.MonthlyRatePercent != 1.5 {
		t.Fatalf("resolved tier mismatch: %+v", q)
	}
	if q.CETEstimate != 1.5*12*1.15 {
		t.Fatalf("cet = %v, want %v", q.CETEstimate, 1.5*12*1.15)
	}
	if q.VendorCommission != 40_000*0.02 {
		t.Fatalf("commission = %v, want %v", q.VendorCommission, 40_000*0.02)
	}
	if q.StoreMargin != 50_000*0.05 {
		t.Fatalf("margin = %v, want %v", q.StoreMargin, 50_000*0.05)
	}
}

func TestPrice_BankDeal_OffTierTermUsesNearestRate(t *testing.T) {
	p := NewPricer(0)
	b := testBank("b1", "Banco Um", 1.0, 0)
	b.RateTable.M36 = 2.0

	// 31 months resolves to the 36-month tier but amortizes over the
	// requested 31 installments.
	q, err := p.Price(BankDeal{Bank: b, VehiclePrice: 30_000, DownPayment: 0, RequestedTerm: 31})
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if q.UsedTerm != 36 || q.MonthlyRatePercent != 2.0 {
		t.Fatalf("tier = (%d, %v), want (36, 2.0)", q.UsedTerm, q.MonthlyRatePercent)
	}
	if q.InstallmentCount != 31 {
		t.Fatalf("count = %d, want requested 31", q.InstallmentCount)
	}
	want := FinancedInstallment(30_000, 0.02, 31)
	if math.Abs(q.InstallmentValue-want) > 1e-9 {
		t.Fatalf("installment = %v, want %v", q.InstallmentValue, want)
	}
}

func TestPrice_InvalidAmounts(t *testing.T) {
	p := NewPricer(0)
	b := testBank("b1", "Banco Um", 1.5, 2.0)

	cases := []Deal{
		BankDeal{Bank: b, VehiclePrice: -1, DownPayment: 0, RequestedTerm: 12},
		BankDeal{Bank: b, VehiclePrice: 10_000, DownPayment: -5, RequestedTerm: 12},
		BankDeal{Bank: b, VehiclePrice: 10_000, DownPayment: 10_000, RequestedTerm: 12}, // financed == 0
		BankDeal{Bank: b, VehiclePrice: 10_000, DownPayment: 12_000, RequestedTerm: 12}, // down > price
		DirectDeal{VehiclePrice: 10_000, DownPayment: 10_000, TermMonths: 12},
		CashDeal{VehiclePrice: 0},
		CashDeal{VehiclePrice: 10_000, CashPrice: -1},
	}
	for _, d := range cases {
		if _, err := p.Price(d); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%+v: got %v, want ErrInvalidAmount", d, err)
		}
	}

	if _, err := p.Price(BankDeal{Bank: b, VehiclePrice: 10_000, RequestedTerm: 0}); !errors.Is(err, ErrInvalidTerm) {
		t.Fatalf("zero term: got %v, want ErrInvalidTerm", err)
	}
}

func TestCompareBanks_RanksByInstallment(t *testing.T) {
	p := NewPricer(0)
	a := testBank("bank-a", "Banco A", 1.5, 2.0)
	b := testBank("bank-b", "Banco B", 1.2, 2.0)

	quotes, err := p.CompareBanks(50_000, 10_000, 48, []bank.Bank{a, b})
	if err != nil {
		t.Fatalf("CompareBanks: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("len = %d, want 2", len(quotes))
	}
	if quotes[0].BankID != "bank-b" || !quotes[0].Recommended {
		t.Fatalf("cheapest bank should rank first and be recommended: %+v", quotes[0])
	}
	if quotes[1].Recommended {
		t.Fatalf("only the first option is recommended")
	}
	if quotes[0].Quote.InstallmentValue >= quotes[1].Quote.InstallmentValue {
		t.Fatalf("ranking not ascending: %v >= %v",
			quotes[0].Quote.InstallmentValue, quotes[1].Quote.InstallmentValue)
	}
}

func TestCompareBanks_ExcludesIneligible(t *testing.T) {
	p := NewPricer(0)

	inactive := testBank("bank-a", "Banco A", 1.0, 2.0)
	inactive.Active = false
	placeholder := testBank("bank-b", "Financiamento Próprio", 0, 0)
	placeholder.DirectFinancing = true
	noTable := testBank("bank-c", "Banco C", 1.0, 2.0)
	noTable.RateTable = nil

	_, err := p.CompareBanks(50_000, 10_000, 48, []bank.Bank{inactive, placeholder, noTable})
	if !errors.Is(err, ErrNoEligibleBanks) {
		t.Fatalf("got %v, want ErrNoEligibleBanks", err)
	}

	if _, err := p.CompareBanks(50_000, 10_000, 48, nil); !errors.Is(err, ErrNoEligibleBanks) {
		t.Fatalf("empty set: got %v, want ErrNoEligibleBanks", err)
	}
}

func TestPrice_Deterministic(t *testing.T) {
	p := NewPricer(0)
	d := BankDeal{
		Bank:          testBank("b1", "Banco Um", 1.79, 2.5),
		VehiclePrice:  83_450.77,
		DownPayment:   12_300.33,
		RequestedTerm: 41,
	}

	first, err := p.Price(d)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := p.Price(d)
		if err != nil {
			t.Fatalf("Price: %v", err)
		}
		if *again != *first {
			t.Fatalf("recomputation not bit-identical: %+v vs %+v", again, first)
		}
	}
}
