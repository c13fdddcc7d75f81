package sqlstore

import (
	"context"
	"errors"
	"testing"

	"clinic-booking/internal/domain/appointment"
	"clinic-booking/internal/domain/uow"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAppointmentRepository(db)

	seed := makeAppointment("A", "2024-05-01", "10:00")
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatal(err)
	}

	var seen *appointment.Appointment
	err := NewGormUoW(db).WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Appointments.Confirm(ctx, seed.ID); err != nil {
			return err
		}
		a, err := r.Appointments.GetByID(ctx, seed.ID)
		seen = a
		return err
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}
	if seen == nil || seen.Status != appointment.StatusConfirmed {
		t.Fatalf("row inside tx not confirmed: %+v", seen)
	}

	got, err := repo.GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != appointment.StatusConfirmed {
		t.Fatalf("confirm not visible after commit: %s", got.Status)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAppointmentRepository(db)

	seed := makeAppointment("A", "2024-05-01", "10:00")
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("boom")
	err := NewGormUoW(db).WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Appointments.Confirm(ctx, seed.ID); err != nil {
			return err
		}
		return wantErr // force rollback
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithinTx err = %v, want %v", err, wantErr)
	}

	got, err := repo.GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != appointment.StatusPending {
		t.Fatalf("status = %s after rollback, want pending", got.Status)
	}
}
