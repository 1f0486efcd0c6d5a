// Package auth separates who a caller is (TokenVerifier) from what they may
// do (Gate + Policy). Write operations and the admin event view go through
// the gate; the public list never does.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cosfat/kzone/internal/domain"
	"github.com/cosfat/kzone/internal/ratelimit"
)

type Capability string

const CapabilityAdmin Capability = "admin"

// Policy decides whether an identity holds a capability.
type Policy interface {
	HasRole(identity domain.Identity, capability Capability) bool
}

// adminEmailPolicy is a single-entry policy table: the admin capability is
// granted to exactly one configured email, compared case-sensitively.
type adminEmailPolicy struct {
	adminEmail string
}

func NewAdminEmailPolicy(email string) Policy {
	return adminEmailPolicy{adminEmail: email}
}

func (p adminEmailPolicy) HasRole(identity domain.Identity, capability Capability) bool {
	if capability != CapabilityAdmin {
		return false
	}
	return identity.Email != "" && identity.Email == p.adminEmail
}

// Gate verifies credentials and answers capability checks, rate limiting
// failed verification per client address.
type Gate struct {
	verifier TokenVerifier
	policy   Policy
	limiter  ratelimit.Limiter
}

func NewGate(verifier TokenVerifier, policy Policy, limiter ratelimit.Limiter) *Gate {
	return &Gate{
		verifier: verifier,
		policy:   policy,
		limiter:  limiter,
	}
}

// Verify checks the rate-limit budget for clientKey, then the credential.
// Over-limit callers fail with ErrTooManyAttempts before the identity
// provider is consulted; a failed verification charges the budget.
func (g *Gate) Verify(ctx context.Context, token, clientKey string) (domain.Identity, error) {
	allowed, err := g.limiter.Allow(ctx, clientKey)
	if err != nil {
		return domain.Identity{}, err
	}
	if !allowed {
		return domain.Identity{}, domain.ErrTooManyAttempts
	}

	identity, err := g.verifier.Verify(ctx, token)
	if err != nil {
		if recordErr := g.limiter.Record(ctx, clientKey); recordErr != nil {
			return domain.Identity{}, recordErr
		}
		if !errors.Is(err, domain.ErrUnauthenticated) {
			err = fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
		}
		return domain.Identity{}, err
	}
	return identity, nil
}

// CheckAdmin reports whether the credential belongs to an admin. It fails
// closed: any verification error yields false alongside the error.
func (g *Gate) CheckAdmin(ctx context.Context, token, clientKey string) (bool, error) {
	identity, err := g.Verify(ctx, token, clientKey)
	if err != nil {
		return false, err
	}
	return g.policy.HasRole(identity, CapabilityAdmin), nil
}

// IsAdmin applies the policy to an already verified identity.
func (g *Gate) IsAdmin(identity domain.Identity) bool {
	return g.policy.HasRole(identity, CapabilityAdmin)
}
