package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"
	"time"
)

var ErrAuth = errors.New("smtp authentication failed")

const smtpDialTimeout = 10 * time.Second

type Transport interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// SMTPTransport submits over implicit TLS (port 465) with PLAIN auth.
type SMTPTransport struct {
	host     string
	addr     string
	username string
	password string
	timeout  time.Duration
}

func NewSMTPTransport(host, port, username, password string) *SMTPTransport {
	return &SMTPTransport{
		host:     host,
		addr:     net.JoinHostPort(host, port),
		username: username,
		password: password,
		timeout:  smtpDialTimeout,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: t.timeout},
		Config:    &tls.Config{ServerName: t.host, MinVersion: tls.VersionTLS12},
	}
	conn, err := dialer.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", t.addr, err)
	}
	// bound the whole exchange, not just the dial
	_ = conn.SetDeadline(time.Now().Add(2 * t.timeout))

	c, err := smtp.NewClient(conn, t.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if err := c.Auth(smtp.PlainAuth("", t.username, t.password, t.host)); err != nil {
		var tpErr *textproto.Error
		if errors.As(err, &tpErr) && tpErr.Code == 535 {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp DATA close: %w", err)
	}
	return c.Quit()
}
