package bankmock

import (
	"context"

	domain "dealerdesk-backend/internal/domain/bank"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, b *domain.Bank) error
	SaveFn        func(ctx context.Context, b *domain.Bank) error
	GetByBankIDFn func(ctx context.Context, bankID string) (*domain.Bank, error)
	ListFn        func(ctx context.Context, onlyActive bool) ([]domain.Bank, error)
}

func (m *Repo) Create(ctx context.Context, b *domain.Bank) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, b *domain.Bank) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBankID(ctx context.Context, bankID string) (*domain.Bank, error) {
	if m.GetByBankIDFn != nil {
		return m.GetByBankIDFn(ctx, bankID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, onlyActive bool) ([]domain.Bank, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, onlyActive)
	}
	return nil, nil
}
