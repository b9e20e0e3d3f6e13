// Package formrelay manda las altas de la waitlist a un endpoint estilo Formspree.
package formrelay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pettabl/internal/domain/waitlist"
	"pettabl/internal/platform/httpclient"
)

var ErrNotConfigured = errors.New("form relay url not configured")

// Relay implementa waitlist.Sink.
type Relay struct {
	url  string
	http *httpclient.Client
}

func New(url string, timeout time.Duration) (*Relay, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrNotConfigured
	}
	return &Relay{url: url, http: httpclient.New(timeout)}, nil
}

type payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Source  string `json:"source"`
	Context string `json:"context"`
}

func (r *Relay) Add(ctx context.Context, e waitlist.Entry) error {
	err := r.http.DoJSON(ctx, http.MethodPost, r.url, nil, payload{
		Name:    e.Name,
		Email:   e.Email,
		Source:  e.Source,
		Context: e.Context,
	}, nil)
	if err != nil {
		return fmt.Errorf("form relay: %w", err)
	}
	return nil
}
