package identity

import (
	"context"

	"snowbird_docs/internal/domain"
)

// PresenceVerifier accepts any non-empty token. This matches the historical
// gate behavior: cookie presence is the only signal, the value is never
// inspected. It is advisory, not a security boundary.
type PresenceVerifier struct{}

var _ domain.SessionVerifier = PresenceVerifier{}

func (PresenceVerifier) Verify(_ context.Context, token string) (bool, error) {
	return token != "", nil
}

// TokenVerifier checks the token against the identity provider's user
// endpoint. Swap it in via SESSION_VERIFY=provider when forged cookies
// actually matter.
type TokenVerifier struct{ c *Client }

var _ domain.SessionVerifier = (*TokenVerifier)(nil)

func NewTokenVerifier(c *Client) *TokenVerifier { return &TokenVerifier{c: c} }

func (v *TokenVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return v.c.VerifyUser(ctx, token)
}
