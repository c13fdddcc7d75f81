package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"strings"
	"time"

	"clinic-booking/internal/domain/notification"
	"clinic-booking/pkg/id"
)

type EmailConfig struct {
	// Sender account; both must be set for real delivery.
	From     string
	Password string

	Host string
	Port string

	ClinicName  string
	ClinicPhone string
}

func (c EmailConfig) hasCredentials() bool { return c.From != "" && c.Password != "" }

// EmailDispatcher sends the booking confirmation email. Without SMTP
// credentials it only logs the message and still reports success.
type EmailDispatcher struct {
	cfg       EmailConfig
	transport Transport
	logger    *log.Logger
	now       func() time.Time
}

var _ notification.Dispatcher = (*EmailDispatcher)(nil)

func NewEmailDispatcher(cfg EmailConfig) *EmailDispatcher {
	if cfg.ClinicName == "" {
		cfg.ClinicName = "Health Clinic"
	}
	return &EmailDispatcher{
		cfg:       cfg,
		transport: NewSMTPTransport(cfg.Host, cfg.Port, cfg.From, cfg.Password),
		logger:    log.Default(),
		now:       time.Now,
	}
}

func (d *EmailDispatcher) WithTransport(t Transport) *EmailDispatcher {
	d.transport = t
	return d
}

func (d *EmailDispatcher) WithLogger(l *log.Logger) *EmailDispatcher {
	d.logger = l
	return d
}

func (d *EmailDispatcher) Subject() string {
	return "Appointment Confirmation - " + d.cfg.ClinicName
}

func (d *EmailDispatcher) Notify(ctx context.Context, b notification.Booking) (delivered bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Printf("email: panic while sending to %s: %v", b.Email, r)
			delivered = false
		}
	}()

	if !d.cfg.hasCredentials() {
		d.logger.Printf("[EMAIL LOG] email would be sent to %s (service=%s, date=%s, time=%s) subject=%q; set SMTP_EMAIL and SMTP_PASSWORD to enable delivery",
			b.Email, b.Service, b.Date, b.Time, d.Subject())
		return true
	}

	msg := d.buildMessage(b)
	if err := d.transport.Send(ctx, d.cfg.From, []string{b.Email}, msg); err != nil {
		if errors.Is(err, ErrAuth) {
			d.logger.Printf("email: authentication failed, check SMTP_EMAIL and SMTP_PASSWORD: %v", err)
		} else {
			d.logger.Printf("email: error sending to %s: %v", b.Email, err)
		}
		return false
	}
	d.logger.Printf("email: sent to %s (service=%s)", b.Email, b.Service)
	return true
}

func (d *EmailDispatcher) buildMessage(b notification.Booking) []byte {
	var sb strings.Builder
	header := func(k, v string) { fmt.Fprintf(&sb, "%s: %s\r\n", k, v) }

	header("From", headerValue(d.cfg.From))
	header("To", headerValue(b.Email))
	header("Subject", mime.QEncoding.Encode("utf-8", headerValue(d.Subject())))
	header("Date", d.now().Format(time.RFC1123Z))
	header("Message-ID", id.NewMessageID(domainOf(d.cfg.From)))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=utf-8")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(d.body(b), "\n", "\r\n"))
	return []byte(sb.String())
}

func (d *EmailDispatcher) body(b notification.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear %s,\n\n", b.Name)
	fmt.Fprintf(&sb, "Thank you for booking an appointment at %s.\n\n", d.cfg.ClinicName)
	sb.WriteString("Appointment Details:\n")
	sb.WriteString("-----------------------------------\n")
	fmt.Fprintf(&sb, "Service: %s\nDate: %s\nTime: %s\nPhone: %s\n", b.Service, b.Date, b.Time, b.Phone)
	sb.WriteString("-----------------------------------\n\n")
	fmt.Fprintf(&sb, "We will contact you shortly via WhatsApp at %s to confirm the appointment.\n\n", b.Phone)
	if d.cfg.ClinicPhone != "" {
		fmt.Fprintf(&sb, "If you need to reschedule, please call us at %s\n\n", d.cfg.ClinicPhone)
	}
	fmt.Fprintf(&sb, "Best regards,\n%s Team\n", d.cfg.ClinicName)
	return sb.String()
}

// headerValue drops CR/LF so user input cannot add headers.
func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		return addr[i+1:]
	}
	return ""
}
