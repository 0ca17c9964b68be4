// Package identity abstracts federated identity providers behind a small
// verifier interface producing a normalized claim, so the user service never
// depends on a provider's response shape.
package identity

import (
	"context"
	"fmt"

	"github.com/akolosov/fincoach/internal/common"
	"google.golang.org/api/idtoken"
)

// Claim is the normalized assertion extracted from a federated identity
// token.
type Claim struct {
	Email string
	Name  string
}

// Verifier validates a raw identity assertion and returns its claim.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claim, error)
}

// GoogleVerifier validates Google ID tokens against a configured OAuth
// client id (the audience).
type GoogleVerifier struct {
	audience string
}

func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{audience: audience}
}

// Verify checks the token signature, expiry, and audience, and extracts the
// email and display name claims. Missing configuration is reported as such
// so callers do not mistake it for a bad token.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Claim, error) {
	if v.audience == "" {
		return nil, common.ErrorConfigurationMissing
	}

	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	claim := &Claim{}
	if email, ok := payload.Claims["email"].(string); ok {
		claim.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		claim.Name = name
	}

	if claim.Email == "" {
		return nil, common.ErrorUnauthorized
	}

	return claim, nil
}
