// Package netcheck reports whether the quote API is reachable before a poll
// cycle starts.
package netcheck

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// Checker reports network availability.
type Checker interface {
	Connected(ctx context.Context) bool
}

// Static is a Checker with a fixed answer.
type Static bool

// Connected implements Checker.
func (s Static) Connected(context.Context) bool { return bool(s) }

// Dialer probes connectivity with a TCP dial to Addr.
type Dialer struct {
	Addr    string
	Timeout time.Duration

	dialer net.Dialer
}

// NewDialer creates a Dialer for the host of rawURL. The port defaults to
// 443 for https and 80 otherwise.
func NewDialer(rawURL string, timeout time.Duration) (*Dialer, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("url %q has no host", rawURL)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}

	return &Dialer{
		Addr:    net.JoinHostPort(u.Hostname(), port),
		Timeout: timeout,
	}, nil
}

// Connected implements Checker.
func (d *Dialer) Connected(ctx context.Context) bool {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	conn, err := d.dialer.DialContext(ctx, "tcp", d.Addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
