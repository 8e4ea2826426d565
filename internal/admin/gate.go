// Package admin holds the admin panel's session gate and catalog management
// flow on top of the API client.
package admin

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/BergomiStore/bergomi_store/internal/apiclient"
)

// Verifier checks an admin token against the API.
type Verifier interface {
	VerifyAdmin(ctx context.Context, token string) error
}

// Decision is the outcome of a gate check.
type Decision struct {
	Granted  bool
	Verified bool  // the API accepted the token
	Err      error // verification failure, if any
}

// Gate guards the admin routes. By default it lets the request through even
// when verification fails; Strict makes it fail closed.
type Gate struct {
	verifier Verifier
	strict   bool
}

func NewGate(verifier Verifier, strict bool) *Gate {
	return &Gate{verifier: verifier, strict: strict}
}

// Strict reports whether the gate fails closed.
func (g *Gate) Strict() bool { return g.strict }

// Check verifies token once.
func (g *Gate) Check(ctx context.Context, token string) Decision {
	if token == "" {
		return Decision{Granted: !g.strict, Err: errors.New("empty admin token")}
	}

	err := g.verifier.VerifyAdmin(ctx, token)
	if err == nil {
		return Decision{Granted: true, Verified: true}
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		log.Warn().Int("status_code", apiErr.StatusCode).Bool("strict", g.strict).Msg("Admin token rejected")
	} else {
		log.Error().Err(err).Bool("strict", g.strict).Msg("Admin token verification failed")
	}
	return Decision{Granted: !g.strict, Err: err}
}
