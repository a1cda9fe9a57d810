package bank

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("bank not found")
	ErrNegativeRate = errors.New("rate table contains a negative rate")
)

// Terms are the five tiers a bank publishes monthly rates for.
// Rates are never interpolated; a requested term resolves to the nearest tier.
var Terms = [5]int{12, 24, 36, 48, 60}

// RateTable holds a bank's monthly interest rate (percent) per published tier.
// A bank either carries all five tiers or no table at all.
type RateTable struct {
	M12 float64 `gorm:"column:m12;type:decimal(6,4)" json:"12"`
	M24 float64 `gorm:"column:m24;type:decimal(6,4)" json:"24"`
	M36 float64 `gorm:"column:m36;type:decimal(6,4)" json:"36"`
	M48 float64 `gorm:"column:m48;type:decimal(6,4)" json:"48"`
	M60 float64 `gorm:"column:m60;type:decimal(6,4)" json:"60"`
}

// Rate returns the published monthly rate for an exact tier.
func (t *RateTable) Rate(term int) (float64, bool) {
	switch term {
	case 12:
		return t.M12, true
	case 24:
		return t.M24, true
	case 36:
		return t.M36, true
	case 48:
		return t.M48, true
	case 60:
		return t.M60, true
	}
	return 0, false
}

// Resolve picks the tier closest to requestedTerm by absolute distance and
// returns it with its monthly rate. Equidistant requests (e.g. 30 between
// 24 and 36) resolve to the lower tier.
func (t *RateTable) Resolve(requestedTerm int) (usedTerm int, monthlyPercent float64) {
	best := Terms[0]
	for _, candidate := range Terms[1:] {
		if absDiff(candidate, requestedTerm) < absDiff(best, requestedTerm) {
			best = candidate
		}
	}
	rate, _ := t.Rate(best)
	return best, rate
}

func (t *RateTable) Validate() error {
	for _, term := range Terms {
		if rate, _ := t.Rate(term); rate < 0 {
			return ErrNegativeRate
		}
	}
	return nil
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

type Bank struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	BankID string `gorm:"size:32;uniqueIndex:ux_banks_bank_id_active" json:"bank_id"`
	Name   string `gorm:"size:120" json:"name"`
	Active bool   `json:"active"`
	// DirectFinancing marks the placeholder record that represents the store's
	// own zero-interest plan; it never enters bank comparisons.
	DirectFinancing   bool           `gorm:"column:direct_financing" json:"direct_financing"`
	CommissionPercent float64        `gorm:"type:decimal(6,3)" json:"commission_percent"`
	RateTable         *RateTable     `gorm:"embedded;embeddedPrefix:rate_" json:"rate_table,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Bank) TableName() string { return "banks" }

// Eligible reports whether the bank may appear in a financing comparison.
func (b *Bank) Eligible() bool {
	return b.Active && !b.DirectFinancing && b.RateTable != nil
}
