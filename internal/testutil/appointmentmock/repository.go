package appointmentmock

import (
	"context"

	domain "clinic-booking/internal/domain/appointment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset reads return context.Canceled; unset writes are no-ops.
type Repo struct {
	CreateFn  func(ctx context.Context, a *domain.Appointment) error
	ListFn    func(ctx context.Context) ([]domain.Appointment, error)
	GetByIDFn func(ctx context.Context, id uint64) (*domain.Appointment, error)
	ConfirmFn func(ctx context.Context, id uint64) error
	DeleteFn  func(ctx context.Context, id uint64) (bool, error)
	StatsFn   func(ctx context.Context) (domain.Stats, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Appointment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Appointment, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Appointment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Confirm(ctx context.Context, id uint64) error {
	if m.ConfirmFn != nil {
		return m.ConfirmFn(ctx, id)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) (bool, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return false, nil
}

func (m *Repo) Stats(ctx context.Context) (domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return domain.Stats{}, context.Canceled
}
