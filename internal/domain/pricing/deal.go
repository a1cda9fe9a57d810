package pricing

import "dealerdesk-backend/internal/domain/bank"

type DealType string

const (
	DealBankFinanced   DealType = "bank_financed"
	DealDirectFinanced DealType = "direct_financed"
	DealCash           DealType = "cash"
)

func (t DealType) Valid() bool {
	switch t {
	case DealBankFinanced, DealDirectFinanced, DealCash:
		return true
	}
	return false
}

// Deal is a sealed discriminated union over the three pricing policies, so a
// bank id on a cash deal (or a cash price on a financed one) cannot be
// expressed at all.
type Deal interface {
	Type() DealType
	// deal restricts implementations to this package.
	deal()
}

var (
	_ Deal = BankDeal{}
	_ Deal = DirectDeal{}
	_ Deal = CashDeal{}
)

// BankDeal finances price minus down payment through a bank's rate table.
type BankDeal struct {
	Bank          bank.Bank
	VehiclePrice  float64
	DownPayment   float64
	RequestedTerm int
}

func (BankDeal) Type() DealType { return DealBankFinanced }
func (BankDeal) deal() {}

// DirectDeal is the store's own zero-interest installment plan.
type DirectDeal struct {
	VehiclePrice float64
	DownPayment  float64
	TermMonths   int
}

func (DirectDeal) Type() DealType { return DealDirectFinanced }
func (DirectDeal) deal() {}

// CashDeal sells at the (possibly discounted) cash price, no installments.
// A zero CashPrice falls back to the vehicle price.
type CashDeal struct {
	VehiclePrice float64
	CashPrice    float64
}

func (CashDeal) Type() DealType { return DealCash }
func (CashDeal) deal() {}

// Quote is the normalized pricing result for any deal type.
type Quote struct {
	DealType           DealType `json:"deal_type"`
	FinancedAmount     float64  `json:"financed_amount"`
	InstallmentCount   int      `json:"installment_count"`
	InstallmentValue   float64  `json:"installment_value"`
	TotalValue         float64  `json:"total_value"`
	UsedTerm           int      `json:"used_term,omitempty"`
	MonthlyRatePercent float64  `json:"monthly_rate_percent,omitempty"`
	CETEstimate        float64  `json:"cet_estimate"`
	VendorCommission   float64  `json:"vendor_commission"`
	StoreMargin        float64  `json:"store_margin"`
}

// BankQuote is one bank's entry in a comparison, ranked by installment value.
type BankQuote struct {
	BankID      string `json:"bank_id"`
	BankName    string `json:"bank_name"`
	Quote       Quote  `json:"quote"`
	Recommended bool   `json:"recommended"`
}
