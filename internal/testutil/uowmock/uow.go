package uowmock

import (
	"context"
	"errors"

	"dealerdesk-backend/internal/domain/uow"
	"dealerdesk-backend/internal/domain/vehicle"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinVehicleTxFn func(ctx context.Context, vehicleID string, fn func(r uow.Repos, v *vehicle.Vehicle) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinVehicleTx(fn func(context.Context, string, func(uow.Repos, *vehicle.Vehicle) error) error) *UoW {
	m.WithinVehicleTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinVehicleTx(ctx context.Context, vehicleID string, fn func(r uow.Repos, v *vehicle.Vehicle) error) error {
	if m.WithinVehicleTxFn != nil {
		return m.WithinVehicleTxFn(ctx, vehicleID, fn)
	}
	return errUnimplemented
}

// Passthrough builds a UoW whose vehicle transaction simply invokes fn with
// the given repos and vehicle, no transaction semantics. Handy for usecase
// tests that only care about the callback's effects.
func Passthrough(repos uow.Repos, v *vehicle.Vehicle) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinVehicleTxFn: func(ctx context.Context, vehicleID string, fn func(uow.Repos, *vehicle.Vehicle) error) error {
			if v == nil {
				return vehicle.ErrNotFound
			}
			return fn(repos, v)
		},
	}
}
