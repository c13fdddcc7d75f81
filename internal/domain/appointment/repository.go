package appointment

import "context"

type Repository interface {
	// Create inserts a new pending appointment and fills ID and CreatedAt
	Create(ctx context.Context, a *Appointment) error

	// List returns every appointment, date DESC then time DESC
	List(ctx context.Context) ([]Appointment, error)

	GetByID(ctx context.Context, id uint64) (*Appointment, error)

	// Confirm and Delete are no-ops for unknown ids
	Confirm(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) (bool, error)

	Stats(ctx context.Context) (Stats, error)
}
