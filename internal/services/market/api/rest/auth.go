package rest

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

// authEnv holds raw env values before post-parse validation.
type authEnv struct {
	Issuer    string `env:"DEEDSHARE_MARKET_TOKEN_ISSUER"`
	Audience  string `env:"DEEDSHARE_MARKET_TOKEN_AUDIENCE"`
	PublicKey string `env:"DEEDSHARE_MARKET_TOKEN_PUBLIC_KEY"`
}

// AuthConfig defines how access tokens are verified.
type AuthConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// Identity is the authenticated caller extracted from an access token.
type Identity struct {
	Account chain.AccountID
	Admin   bool
}

// accessClaims is the internal claims type used for JWT parsing.
type accessClaims struct {
	jwt.RegisteredClaims
	Account string `json:"account"`
	Admin   bool   `json:"admin"`
}

// LoadAuthConfigFromEnv reads access token verification configuration.
func LoadAuthConfigFromEnv(now func() time.Time) (AuthConfig, error) {
	var raw authEnv
	if err := env.Parse(&raw); err != nil {
		return AuthConfig{}, fmt.Errorf("parse token env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return AuthConfig{}, fmt.Errorf("DEEDSHARE_MARKET_TOKEN_ISSUER is required")
	}
	if audience == "" {
		return AuthConfig{}, fmt.Errorf("DEEDSHARE_MARKET_TOKEN_AUDIENCE is required")
	}
	if publicKey == "" {
		return AuthConfig{}, fmt.Errorf("DEEDSHARE_MARKET_TOKEN_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return AuthConfig{}, fmt.Errorf("decode token public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return AuthConfig{}, fmt.Errorf("token public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return AuthConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// identityFromRequest verifies the bearer token on a request.
func identityFromRequest(r *http.Request, cfg AuthConfig) (Identity, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return Identity{}, apperrors.New(apperrors.CodeTokenInvalid, "authorization header is required")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return Identity{}, apperrors.New(apperrors.CodeTokenInvalid, "authorization header must use bearer scheme")
	}
	return validateAccessToken(token, cfg)
}

// validateAccessToken verifies an access token and extracts the identity.
func validateAccessToken(token string, cfg AuthConfig) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, apperrors.New(apperrors.CodeTokenInvalid, "access token is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return Identity{}, errors.New("token verifier is not configured")
	}

	var parsed accessClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithTimeFunc(cfg.Now),
	)
	if err != nil {
		return Identity{}, mapJWTError(err)
	}

	account := strings.TrimSpace(parsed.Account)
	if account == "" {
		return Identity{}, apperrors.New(apperrors.CodeTokenInvalid, "token account claim is required")
	}
	return Identity{
		Account: chain.AccountID(account),
		Admin:   parsed.Admin,
	}, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.Wrap(apperrors.CodeTokenExpired, "access token is expired", err)
	}
	return apperrors.Wrap(apperrors.CodeTokenInvalid, "access token is invalid", err)
}

func decodeBase64(value string) ([]byte, error) {
	if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
		return decoded, nil
	}
	return base64.RawStdEncoding.DecodeString(value)
}
