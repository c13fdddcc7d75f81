package notification

import (
	"context"
	"time"
)

// Booking carries the details rendered into a confirmation email.
type Booking struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Date    string
	Time    string
}

// Dispatcher delivers the booking confirmation. It never returns an error:
// failures are logged and reported as false.
type Dispatcher interface {
	Notify(ctx context.Context, b Booking) bool
}

// Confirmation is sent when staff confirm an appointment.
type Confirmation struct {
	AppointmentID uint64
	Name          string
	Phone         string
	Service       string
	Date          string
	Time          string
}

type ConfirmNotifier interface {
	NotifyConfirmed(ctx context.Context, c Confirmation) bool
}

const (
	EventBooked    = "appointment.booked"
	EventConfirmed = "appointment.confirmed"
	EventDeleted   = "appointment.deleted"
)

// Event is a lifecycle message for downstream consumers.
type Event struct {
	ID            string    `json:"event_id"`
	Type          string    `json:"event_type"`
	AppointmentID uint64    `json:"appointment_id"`
	Service       string    `json:"service,omitempty"`
	Date          string    `json:"date,omitempty"`
	Time          string    `json:"time,omitempty"`
	Status        string    `json:"status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}
