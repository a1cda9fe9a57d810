package bank

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/bank"
	"dealerdesk-backend/pkg/id"
)

type Usecase struct{ repo bank.Repository }

func NewUsecase(r bank.Repository) *Usecase { return &Usecase{repo: r} }

var errInvalidInput = errors.New("invalid bank input")

type RateTableInput struct {
	M12 float64 `json:"12"`
	M24 float64 `json:"24"`
	M36 float64 `json:"36"`
	M48 float64 `json:"48"`
	M60 float64 `json:"60"`
}

type CreateBankInput struct {
	Name              string          `json:"name"`
	CommissionPercent float64         `json:"commission_percent"`
	DirectFinancing   bool            `json:"direct_financing"`
	RateTable         *RateTableInput `json:"rate_table"`
}

type BankDTO struct {
	BankID            string          `json:"bank_id"`
	Name              string          `json:"name"`
	Active            bool            `json:"active"`
	DirectFinancing   bool            `json:"direct_financing"`
	CommissionPercent float64         `json:"commission_percent"`
	RateTable         *bank.RateTable `json:"rate_table,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (u *Usecase) Create(ctx context.Context, in CreateBankInput) (*BankDTO, error) {
	if in.Name == "" || in.CommissionPercent < 0 {
		return nil, errInvalidInput
	}
	b := &bank.Bank{
		BankID:            id.NewID32(),
		Name:              in.Name,
		Active:            true,
		DirectFinancing:   in.DirectFinancing,
		CommissionPercent: in.CommissionPercent,
	}
	if in.RateTable != nil {
		table := bank.RateTable(*in.RateTable)
		if err := table.Validate(); err != nil {
			return nil, err
		}
		b.RateTable = &table
	}
	if err := u.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) Get(ctx context.Context, bankID string) (*BankDTO, error) {
	b, err := u.repo.GetByBankID(ctx, bankID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bank.ErrNotFound
		}
		return nil, err
	}
	return toDTO(b), nil
}

func (u *Usecase) List(ctx context.Context, onlyActive bool) ([]BankDTO, error) {
	bs, err := u.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]BankDTO, 0, len(bs))
	for i := range bs {
		out = append(out, *toDTO(&bs[i]))
	}
	return out, nil
}

type UpdateBankInput struct {
	Name              *string         `json:"name"`
	Active            *bool           `json:"active"`
	CommissionPercent *float64        `json:"commission_percent"`
	RateTable         *RateTableInput `json:"rate_table"`
}

func (u *Usecase) Update(ctx context.Context, bankID string, in UpdateBankInput) (*BankDTO, error) {
	b, err := u.repo.GetByBankID(ctx, bankID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bank.ErrNotFound
		}
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, errInvalidInput
		}
		b.Name = *in.Name
	}
	if in.Active != nil {
		b.Active = *in.Active
	}
	if in.CommissionPercent != nil {
		if *in.CommissionPercent < 0 {
			return nil, errInvalidInput
		}
		b.CommissionPercent = *in.CommissionPercent
	}
	if in.RateTable != nil {
		table := bank.RateTable(*in.RateTable)
		if err := table.Validate(); err != nil {
			return nil, err
		}
		b.RateTable = &table
	}
	if err := u.repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return toDTO(b), nil
}

func toDTO(b *bank.Bank) *BankDTO {
	return &BankDTO{
		BankID:            b.BankID,
		Name:              b.Name,
		Active:            b.Active,
		DirectFinancing:   b.DirectFinancing,
		CommissionPercent: b.CommissionPercent,
		RateTable:         b.RateTable,
		CreatedAt:         b.CreatedAt,
	}
}
