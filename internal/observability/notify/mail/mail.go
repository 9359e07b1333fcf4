// Package mail delivers scan summaries over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sitewatch/sitewatch/internal/observability/notify"
)

// SendFunc sends one mail message. It matches smtp.SendMail so tests can
// substitute their own transport.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Config captures the SMTP delivery settings.
type Config struct {
	// Addr is the SMTP server address ("host:port").
	Addr string
	From string
	To   []string
	Auth smtp.Auth
	Send SendFunc
}

// Client delivers scan summaries as plain-text mail.
type Client struct {
	addr string
	from string
	to   []string
	auth smtp.Auth
	send SendFunc
}

// NewClient builds an SMTP client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("smtp address is required")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, errors.New("mail sender is required")
	}
	if len(cfg.To) == 0 {
		return nil, errors.New("at least one mail recipient is required")
	}

	send := cfg.Send
	if send == nil {
		send = smtp.SendMail
	}

	return &Client{
		addr: cfg.Addr,
		from: cfg.From,
		to:   cfg.To,
		auth: cfg.Auth,
		send: send,
	}, nil
}

// SendScanSummary sends a formatted summary mail.
func (c *Client) SendScanSummary(ctx context.Context, payload notify.ScanSummaryPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("noindex pages found on %s", payload.SiteURL)
	body := fmt.Sprintf(
		"Scan %s finished at %s.\r\n\r\nChecked URLs: %d\r\nNoindex pages: %d\r\n",
		payload.ScanID,
		payload.FinishedAt.Format("2006-01-02 15:04:05 MST"),
		payload.TotalURLs,
		payload.NoindexCount,
	)

	msg := strings.Builder{}
	fmt.Fprintf(&msg, "From: %s\r\n", c.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(c.to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	if err := c.send(c.addr, c.auth, c.from, c.to, []byte(msg.String())); err != nil {
		return fmt.Errorf("send summary mail: %w", err)
	}
	return nil
}
