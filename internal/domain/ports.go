package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("content: not found")

// ContentRepository is the read side of the compiled document store. Lookups
// are linear scans; collections are small and first match wins.
type ContentRepository interface {
	PropertyBySlug(slug string) (Property, error)
	Properties() []Property
	HouseRulesFor(propertySlug string) (HouseRulesDoc, bool)
	InstructionsFor(propertySlug string) (InstructionsDoc, bool)
	CriticalInfoFor(propertySlug string) (CriticalInfoDoc, bool)
	GuideFor(locationSlug string) (LocalGuideDoc, bool)
}

// WifiExtractor pulls wifi credentials out of a raw document body. Absent
// sections or labels yield empty fields, never errors.
type WifiExtractor interface {
	Extract(body string) WifiInfo
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// IdentityClient talks to the external one-time-link identity provider.
type IdentityClient interface {
	SendMagicLink(ctx context.Context, email, redirectTo string) error
	VerifyOTP(ctx context.Context, tokenHash, otpType string) (string, error)
	VerifyUser(ctx context.Context, accessToken string) (bool, error)
}

// SessionVerifier decides whether a session token is acceptable. The default
// implementation checks presence only; a provider-backed verifier can be
// swapped in without touching the gate.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}
