// Package admin verifies the signed grants that authorize privileged arena
// operations. Grants are short-lived EdDSA tokens minted by an out-of-band
// issuer; the arena only ever holds the public key.
package admin

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/emberarena/internal/platform/errors"
)

// Environment variables configuring mint grant verification.
const (
	EnvMintGrantIssuer    = "EMBERARENA_MINT_GRANT_ISSUER"
	EnvMintGrantAudience  = "EMBERARENA_MINT_GRANT_AUDIENCE"
	EnvMintGrantPublicKey = "EMBERARENA_MINT_GRANT_PUBLIC_KEY"
)

// mintGrantEnv holds raw env values before post-parse validation.
type mintGrantEnv struct {
	Issuer    string `env:"EMBERARENA_MINT_GRANT_ISSUER"`
	Audience  string `env:"EMBERARENA_MINT_GRANT_AUDIENCE"`
	PublicKey string `env:"EMBERARENA_MINT_GRANT_PUBLIC_KEY"`
}

// MintGrantConfig defines how mint grants are verified.
type MintGrantConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// MintGrantExpectation defines the expected mint parameters for a grant.
type MintGrantExpectation struct {
	Owner    string
	Category string
	Rarity   string
}

// MintGrantClaims captures validated mint grant claims.
type MintGrantClaims struct {
	Issuer    string
	Audience  []string
	Subject   string
	ExpiresAt time.Time
	NotBefore time.Time
	IssuedAt  time.Time
	JWTID     string
	Owner     string
	Category  string
	Rarity    string
}

// mintGrantClaims is the internal claims type used for JWT parsing.
type mintGrantClaims struct {
	jwt.RegisteredClaims
	Owner    string `json:"owner"`
	Category string `json:"category"`
	Rarity   string `json:"rarity"`
}

// LoadMintGrantConfigFromEnv reads mint grant verification configuration.
func LoadMintGrantConfigFromEnv(now func() time.Time) (MintGrantConfig, error) {
	var raw mintGrantEnv
	if err := env.Parse(&raw); err != nil {
		return MintGrantConfig{}, fmt.Errorf("parse mint grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return MintGrantConfig{}, fmt.Errorf("EMBERARENA_MINT_GRANT_ISSUER is required")
	}
	if audience == "" {
		return MintGrantConfig{}, fmt.Errorf("EMBERARENA_MINT_GRANT_AUDIENCE is required")
	}
	if publicKey == "" {
		return MintGrantConfig{}, fmt.Errorf("EMBERARENA_MINT_GRANT_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return MintGrantConfig{}, fmt.Errorf("decode mint grant public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return MintGrantConfig{}, fmt.Errorf("mint grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return MintGrantConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// ValidateMintGrant verifies a mint grant token and validates expected claims.
func ValidateMintGrant(grant string, expected MintGrantExpectation, cfg MintGrantConfig) (MintGrantClaims, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return MintGrantClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "mint grant is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return MintGrantClaims{}, errors.New("mint grant verifier is not configured")
	}

	var parsed mintGrantClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return MintGrantClaims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return MintGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"mint grant issuer mismatch",
			map[string]string{"Field": "issuer"},
		)
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return MintGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"mint grant audience mismatch",
			map[string]string{"Field": "audience"},
		)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return MintGrantClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "mint grant sub is required")
	}

	if parsed.ID == "" {
		return MintGrantClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "mint grant jti is required")
	}
	if parsed.ExpiresAt == nil {
		return MintGrantClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "mint grant exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return MintGrantClaims{}, apperrors.New(apperrors.CodeGrantExpired, "mint grant is expired")
	}
	if parsed.NotBefore != nil {
		nbf := parsed.NotBefore.Time.UTC()
		if now.Before(nbf) {
			return MintGrantClaims{}, apperrors.New(apperrors.CodeGrantInvalid, "mint grant not active yet")
		}
	}

	if strings.TrimSpace(parsed.Owner) == "" || parsed.Owner != expected.Owner {
		return MintGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"mint grant owner mismatch",
			map[string]string{"Field": "owner"},
		)
	}
	if strings.TrimSpace(parsed.Category) == "" || !strings.EqualFold(parsed.Category, expected.Category) {
		return MintGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"mint grant category mismatch",
			map[string]string{"Field": "category"},
		)
	}
	if strings.TrimSpace(parsed.Rarity) == "" || !strings.EqualFold(parsed.Rarity, expected.Rarity) {
		return MintGrantClaims{}, apperrors.WithMetadata(
			apperrors.CodeGrantInvalid,
			"mint grant rarity mismatch",
			map[string]string{"Field": "rarity"},
		)
	}

	claims := MintGrantClaims{
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		Subject:   parsed.Subject,
		ExpiresAt: exp,
		JWTID:     parsed.ID,
		Owner:     parsed.Owner,
		Category:  parsed.Category,
		Rarity:    parsed.Rarity,
	}
	if parsed.NotBefore != nil {
		claims.NotBefore = parsed.NotBefore.Time.UTC()
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// IssueMintGrant signs a mint grant with the issuer's private key. It exists
// for the grant-issuing CLI and tests; the arena runtime never signs.
func IssueMintGrant(key ed25519.PrivateKey, cfg MintGrantConfig, subject, jwtID string, expected MintGrantExpectation, ttl time.Duration) (string, error) {
	if len(key) != ed25519.PrivateKeySize {
		return "", errors.New("mint grant private key must be 64 bytes")
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	issuedAt := now().UTC()
	claims := mintGrantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			Subject:   subject,
			ID:        jwtID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Owner:    expected.Owner,
		Category: expected.Category,
		Rarity:   expected.Rarity,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign mint grant: %w", err)
	}
	return signed, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeGrantInvalid, "mint grant signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeGrantInvalid, "mint grant alg is invalid")
	}
	return apperrors.New(apperrors.CodeGrantInvalid, "mint grant is invalid")
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
