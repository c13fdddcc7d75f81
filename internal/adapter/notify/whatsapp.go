package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"clinic-booking/internal/domain/notification"
)

type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	// Twilio WhatsApp sender, E.164 without the "whatsapp:" prefix
	From       string
	ClinicName string
}

func (c WhatsAppConfig) enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

// MessageCreator is the slice of the Twilio API used here.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// WhatsAppNotifier tells the patient their appointment was confirmed.
type WhatsAppNotifier struct {
	cfg    WhatsAppConfig
	api    MessageCreator
	logger *log.Logger
}

var _ notification.ConfirmNotifier = (*WhatsAppNotifier)(nil)

func NewWhatsAppNotifier(cfg WhatsAppConfig) *WhatsAppNotifier {
	n := &WhatsAppNotifier{cfg: cfg, logger: log.Default()}
	if cfg.enabled() {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
		n.api = client.Api
	}
	return n
}

func (n *WhatsAppNotifier) WithAPI(api MessageCreator) *WhatsAppNotifier {
	n.api = api
	return n
}

func (n *WhatsAppNotifier) WithLogger(l *log.Logger) *WhatsAppNotifier {
	n.logger = l
	return n
}

func (n *WhatsAppNotifier) NotifyConfirmed(ctx context.Context, c notification.Confirmation) (delivered bool) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Printf("whatsapp: panic while notifying %s: %v", c.Phone, r)
			delivered = false
		}
	}()

	if !n.cfg.enabled() || n.api == nil {
		n.logger.Printf("appointment %d confirmed. WhatsApp notification would be sent to %s", c.AppointmentID, c.Phone)
		return true
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappAddr(c.Phone))
	params.SetFrom(whatsappAddr(n.cfg.From))
	params.SetBody(n.body(c))

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		n.logger.Printf("whatsapp: failed to send to %s: %v", c.Phone, err)
		return false
	}
	if resp != nil && resp.Sid != nil {
		n.logger.Printf("whatsapp: confirmation sent to %s, SID: %s", c.Phone, *resp.Sid)
	} else {
		n.logger.Printf("whatsapp: confirmation sent to %s, but no SID returned", c.Phone)
	}
	return true
}

func (n *WhatsAppNotifier) body(c notification.Confirmation) string {
	clinic := n.cfg.ClinicName
	if clinic == "" {
		clinic = "the clinic"
	}
	return fmt.Sprintf("Hello %s, your %s appointment at %s on %s at %s is confirmed.",
		c.Name, c.Service, clinic, c.Date, c.Time)
}

func whatsappAddr(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	return "whatsapp:" + phone
}
