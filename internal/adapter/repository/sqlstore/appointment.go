package sqlstore

import (
	"context"
	"errors"
	"time"

	"clinic-booking/internal/domain/appointment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppointmentRepository struct{ db *gorm.DB }

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Literal string ordering on both columns, as stored.
var listOrder = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "date"}, Desc: true},
	{Column: clause.Column{Name: "time"}, Desc: true},
}}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	a.ID = 0
	a.Status = appointment.StatusPending
	a.CreatedAt = time.Time{}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AppointmentRepository) List(ctx context.Context) ([]appointment.Appointment, error) {
	out := []appointment.Appointment{}
	res := r.db.WithContext(ctx).Order(listOrder).Find(&out)
	return out, res.Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint64) (*appointment.Appointment, error) {
	var out appointment.Appointment
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *AppointmentRepository) Confirm(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", id).
		Update("status", appointment.StatusConfirmed).Error
}

// Delete reports whether a row was removed.
func (r *AppointmentRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&appointment.Appointment{})
	return res.RowsAffected > 0, res.Error
}

func (r *AppointmentRepository) Stats(ctx context.Context) (appointment.Stats, error) {
	var s appointment.Stats
	q := r.db.WithContext(ctx).Model(&appointment.Appointment{})
	if err := q.Session(&gorm.Session{}).Count(&s.Total).Error; err != nil {
		return s, err
	}
	if err := q.Session(&gorm.Session{}).Where("status = ?", appointment.StatusConfirmed).Count(&s.Confirmed).Error; err != nil {
		return s, err
	}
	if err := q.Session(&gorm.Session{}).Where("status = ?", appointment.StatusPending).Count(&s.Pending).Error; err != nil {
		return s, err
	}
	return s, nil
}
