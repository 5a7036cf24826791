package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"ms-catering/internal/models"
)

// ExtractTokenFromRequest extracts a bearer token from the Authorization
// header.
func ExtractTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header format must be 'Bearer {token}'")
	}
	return parts[1], nil
}

// Verifier checks HS256 access tokens issued by the auth service and
// yields the caller identity. Verified tokens are cached in Redis so hot
// tokens skip re-parsing.
type Verifier struct {
	secret []byte
	cache  *TokenCache
}

func NewVerifier(secret string, cache *TokenCache) *Verifier {
	return &Verifier{secret: []byte(secret), cache: cache}
}

func (v *Verifier) Verify(ctx context.Context, rawToken string) (models.Identity, error) {
	if rawToken == "" {
		return models.Identity{}, errors.New("empty token")
	}

	if v.cache != nil {
		if identity, ok := v.cache.Get(ctx, rawToken); ok {
			return identity, nil
		}
	}

	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, errors.New("invalid token claims")
	}

	identity := models.Identity{}
	if id, ok := claims["id"].(string); ok {
		identity.ID = id
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}

	// Tokens without id and email are unusable for ownership checks.
	if identity.ID == "" || identity.Email == "" {
		return models.Identity{}, errors.New("invalid token payload")
	}

	if v.cache != nil {
		v.cache.Set(ctx, rawToken, identity)
	}
	return identity, nil
}
