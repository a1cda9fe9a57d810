package pricing

import "math"

// FinancedInstallment computes the fixed monthly payment for a loan using the
// Price (French) amortization formula. monthlyRate is a ratio (0.015 = 1.5%).
// A zero rate degenerates to a plain division of the principal; non-positive
// principal or term yields 0.
func FinancedInstallment(principal, monthlyRate float64, termMonths int) float64 {
	if principal <= 0 || termMonths < 1 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(termMonths)
	}
	pow := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * (monthlyRate * pow) / (pow - 1)
}

// DirectInstallment is the zero-interest plan offered by the store itself:
// the financed amount split into equal parts.
func DirectInstallment(price, downPayment float64, termMonths int) float64 {
	return FinancedInstallment(price-downPayment, 0, termMonths)
}

// Round2 rounds to currency precision. Internal computation stays at full
// precision; rounding happens only when building presentation values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
