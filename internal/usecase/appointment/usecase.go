package appointment

import (
	"context"
	"errors"
	"log"
	"time"

	domain "clinic-booking/internal/domain/appointment"
	"clinic-booking/internal/domain/notification"
	"clinic-booking/internal/domain/uow"
	"clinic-booking/pkg/id"
)

type Usecase struct {
	repo       domain.Repository
	uow        uow.UnitOfWork
	dispatcher notification.Dispatcher
	confirmer  notification.ConfirmNotifier
	publisher  notification.Publisher
	now        func() time.Time
}

// NewUsecase: repo for plain reads/writes, UoW for confirm-then-fetch.
// Notification collaborators are optional; nil ones are skipped.
func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, d notification.Dispatcher,
	c notification.ConfirmNotifier, p notification.Publisher) *Usecase {
	return &Usecase{repo: repo, uow: tx, dispatcher: d, confirmer: c, publisher: p, now: time.Now}
}

func infra(op string, err error) error { return &domain.InfrastructureError{Op: op, Err: err} }

// Book validates and stores a new pending appointment, then attempts the
// confirmation email. The email outcome never fails the booking.
func (u *Usecase) Book(ctx context.Context, in BookInput) (*BookResult, error) {
	a := &domain.Appointment{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Service: in.Service,
		Date:    in.Date,
		Time:    in.Time,
		Notes:   in.Notes,
		Status:  domain.StatusPending,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, infra("create appointment", err)
	}

	res := &BookResult{ID: a.ID}
	if u.dispatcher != nil {
		res.EmailDelivered = u.dispatcher.Notify(ctx, notification.Booking{
			Name:    a.Name,
			Email:   a.Email,
			Phone:   a.Phone,
			Service: a.Service,
			Date:    a.Date,
			Time:    a.Time,
		})
		if !res.EmailDelivered {
			log.Printf("appointment %d booked, confirmation email not delivered", a.ID)
		}
	}
	u.publish(ctx, notification.EventBooked, a)
	return res, nil
}

func (u *Usecase) List(ctx context.Context) ([]AppointmentDTO, error) {
	rows, err := u.repo.List(ctx)
	if err != nil {
		return nil, infra("list appointments", err)
	}
	out := make([]AppointmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

// Confirm marks the appointment confirmed. Unknown ids are not an error;
// the confirmation notice only goes out when the row exists.
func (u *Usecase) Confirm(ctx context.Context, appointmentID uint64) error {
	var confirmed *domain.Appointment
	err := u.withinTx(ctx, func(r domain.Repository) error {
		if err := r.Confirm(ctx, appointmentID); err != nil {
			return err
		}
		a, err := r.GetByID(ctx, appointmentID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		confirmed = a
		return nil
	})
	if err != nil {
		return infra("confirm appointment", err)
	}
	if confirmed == nil {
		return nil
	}

	if u.confirmer != nil {
		u.confirmer.NotifyConfirmed(ctx, notification.Confirmation{
			AppointmentID: confirmed.ID,
			Name:          confirmed.Name,
			Phone:         confirmed.Phone,
			Service:       confirmed.Service,
			Date:          confirmed.Date,
			Time:          confirmed.Time,
		})
	}
	u.publish(ctx, notification.EventConfirmed, confirmed)
	return nil
}

// Delete removes the appointment; unknown ids are not an error.
func (u *Usecase) Delete(ctx context.Context, appointmentID uint64) error {
	removed, err := u.repo.Delete(ctx, appointmentID)
	if err != nil {
		return infra("delete appointment", err)
	}
	if removed {
		u.publish(ctx, notification.EventDeleted, &domain.Appointment{ID: appointmentID})
	}
	return nil
}

func (u *Usecase) Stats(ctx context.Context) (*StatsDTO, error) {
	s, err := u.repo.Stats(ctx)
	if err != nil {
		return nil, infra("appointment stats", err)
	}
	return &StatsDTO{Total: s.Total, Confirmed: s.Confirmed, Pending: s.Pending}, nil
}

func (u *Usecase) withinTx(ctx context.Context, fn func(r domain.Repository) error) error {
	if u.uow == nil {
		return fn(u.repo)
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error { return fn(r.Appointments) })
}

func (u *Usecase) publish(ctx context.Context, eventType string, a *domain.Appointment) {
	if u.publisher == nil {
		return
	}
	ev := notification.Event{
		ID:            id.NewID32(),
		Type:          eventType,
		AppointmentID: a.ID,
		Service:       a.Service,
		Date:          a.Date,
		Time:          a.Time,
		Status:        string(a.Status),
		OccurredAt:    u.now().UTC(),
	}
	if err := u.publisher.Publish(ctx, ev); err != nil {
		log.Printf("publish %s for appointment %d: %v", eventType, a.ID, err)
	}
}
