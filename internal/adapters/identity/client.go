// internal/adapters/identity/client.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"snowbird_docs/internal/adapters/observability"
	"snowbird_docs/internal/domain"
)

// Client talks to a Supabase-style GoTrue endpoint: magic-link issuance,
// token-hash verification, and access-token checks. Failures are surfaced to
// the caller as-is; there is no retry here, a failed send just leaves the
// user unauthenticated.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

var _ domain.IdentityClient = (*Client)(nil)

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// SendMagicLink asks the provider to email a one-time sign-in link that
// redirects back to redirectTo.
func (c *Client) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	payload := map[string]any{
		"email": email,
		"options": map[string]any{
			"emailRedirectTo": redirectTo,
		},
	}
	return c.post(ctx, "otp", "/auth/v1/otp", payload, nil)
}

// VerifyOTP exchanges a magic-link token hash for an access token.
func (c *Client) VerifyOTP(ctx context.Context, tokenHash, otpType string) (string, error) {
	payload := map[string]any{
		"token_hash": tokenHash,
		"type":       otpType,
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.post(ctx, "verify", "/auth/v1/verify", payload, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("verify: no access token in response")
	}
	return out.AccessToken, nil
}

// VerifyUser reports whether the access token maps to a live user. A 401/403
// is a clean "no"; anything else unexpected is an error.
func (c *Client) VerifyUser(ctx context.Context, accessToken string) (bool, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/auth/v1/user", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("identity", "user", 0, time.Since(start))
		return false, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("identity", "user", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("user check: status %d", resp.StatusCode)
	}
}

func (c *Client) post(ctx context.Context, endpoint, path string, payload any, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.key)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("identity", endpoint, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("identity", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return fmt.Errorf("%s: %s", endpoint, errorMessage(resp))
}

// errorMessage pulls the provider's msg/error fields out of a failure body,
// falling back to the HTTP status.
func errorMessage(resp *http.Response) string {
	var e struct {
		Msg         string `json:"msg"`
		ErrText     string `json:"error"`
		Description string `json:"error_description"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(b, &e) == nil {
		for _, m := range []string{e.Msg, e.Description, e.ErrText} {
			if m != "" {
				return m
			}
		}
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
