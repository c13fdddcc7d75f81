package uow

import (
	"context"

	"clinic-booking/internal/domain/appointment"
)

type Repos struct {
	Appointments appointment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
