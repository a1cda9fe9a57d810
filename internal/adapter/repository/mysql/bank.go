package mysql

import (
	"context"

	"gorm.io/gorm"

	bankDomain "dealerdesk-backend/internal/domain/bank"
)

type BankRepository struct{ db *gorm.DB }

func NewBankRepository(db *gorm.DB) *BankRepository { return &BankRepository{db: db} }

func (r *BankRepository) Create(ctx context.Context, b *bankDomain.Bank) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BankRepository) Save(ctx context.Context, b *bankDomain.Bank) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BankRepository) GetByBankID(ctx context.Context, bankID string) (*bankDomain.Bank, error) {
	var out bankDomain.Bank
	res := r.db.WithContext(ctx).Where("bank_id = ?", bankID).First(&out)
	return &out, res.Error
}

func (r *BankRepository) List(ctx context.Context, onlyActive bool) ([]bankDomain.Bank, error) {
	q := r.db.WithContext(ctx)
	if onlyActive {
		q = q.Where("active = ?", true)
	}
	var out []bankDomain.Bank
	res := q.Order("name ASC, id ASC").Find(&out)
	return out, res.Error
}
