package appointment

import (
	"time"

	domain "clinic-booking/internal/domain/appointment"
)

type BookInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

type BookResult struct {
	ID uint64 `json:"id"`
	// EmailDelivered is logged only; the HTTP contract does not expose it.
	EmailDelivered bool `json:"-"`
}

type AppointmentDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type StatsDTO struct {
	Total     int64 `json:"total"`
	Confirmed int64 `json:"confirmed"`
	Pending   int64 `json:"pending"`
}

func toDTO(a *domain.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Service:   a.Service,
		Date:      a.Date,
		Time:      a.Time,
		Notes:     a.Notes,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	}
}
