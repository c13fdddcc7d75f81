package appointment

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Table: appointments. Date and Time are kept as the client sent them.
type Appointment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255;not null" json:"email"`
	Phone     string    `gorm:"column:phone;size:64;not null" json:"phone"`
	Service   string    `gorm:"column:service;size:255;not null" json:"service"`
	Date      string    `gorm:"column:date;size:32;not null;index:idx_appointments_date_time,priority:1" json:"date"`
	Time      string    `gorm:"column:time;size:32;not null;index:idx_appointments_date_time,priority:2" json:"time"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes"`
	Status    Status    `gorm:"column:status;size:16;not null;default:pending;index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Appointment) TableName() string { return "appointments" }

// Stats holds the three counts over the full table.
type Stats struct {
	Total     int64
	Confirmed int64
	Pending   int64
}
