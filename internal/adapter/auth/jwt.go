// Package auth verifies bearer tokens issued by the identity provider. Local
// setups sign tokens with a shared HS256 secret; production validates RS256
// tokens against the provider's JWKS.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const (
	jwksRefreshInterval = time.Hour
	clockSkew           = time.Minute
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("bad auth header")
)

type JWTAuthenticator struct {
	audience string
	issuer   string
	parser   *jwt.Parser
	keyFunc  jwt.Keyfunc
	jwks     *keyfunc.JWKS
}

var _ ports.IdentityProvider = (*JWTAuthenticator)(nil)

// NewHS256 accepts tokens signed with secret.
func NewHS256(secret []byte, audience, issuer string) (*JWTAuthenticator, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: shared secret is empty")
	}
	return &JWTAuthenticator{
		audience: audience,
		issuer:   issuer,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})),
		keyFunc: func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return secret, nil
		},
	}, nil
}

// NewJWKS fetches the key set at url and keeps it refreshed in the
// background until Close is called.
func NewJWKS(url, audience, issuer string) (*JWTAuthenticator, error) {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   jwksRefreshInterval,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: fetch jwks: %w", err)
	}
	return NewWithJWKS(jwks, audience, issuer), nil
}

func NewWithJWKS(jwks *keyfunc.JWKS, audience, issuer string) *JWTAuthenticator {
	return &JWTAuthenticator{
		audience: audience,
		issuer:   issuer,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"RS256"})),
		keyFunc:  jwks.Keyfunc,
		jwks:     jwks,
	}
}

// Close stops the background JWKS refresh, if any.
func (a *JWTAuthenticator) Close() {
	if a.jwks != nil {
		a.jwks.EndBackground()
	}
}

func (a *JWTAuthenticator) UserIDFromAuthHeader(header string) (string, error) {
	token, err := bearerToken(header)
	if err != nil {
		return "", unauthorized(err)
	}
	userID, err := a.userIDFromToken(token)
	if err != nil {
		return "", unauthorized(err)
	}
	return userID, nil
}

func (a *JWTAuthenticator) userIDFromToken(tokenStr string) (string, error) {
	parsed, err := a.parser.Parse(tokenStr, a.keyFunc)
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	now := time.Now().Add(clockSkew).Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return "", errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return "", errors.New("token not valid yet")
	}
	if a.audience != "" && !claims.VerifyAudience(a.audience, true) {
		return "", errors.New("invalid audience")
	}
	if a.issuer != "" && !claims.VerifyIssuer(a.issuer, true) {
		return "", errors.New("invalid issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuthorization
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errBadAuthorization
	}
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return "", errBadAuthorization
	}
	return token, nil
}

func unauthorized(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
}
