package bank

import "context"

type Repository interface {
	Create(ctx context.Context, b *Bank) error
	Save(ctx context.Context, b *Bank) error
	GetByBankID(ctx context.Context, bankID string) (*Bank, error)
	// List returns banks, optionally restricted to active ones.
	List(ctx context.Context, onlyActive bool) ([]Bank, error)
}
