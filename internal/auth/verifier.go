package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt"

	"github.com/cosfat/kzone/internal/domain"
)

// TokenVerifier is the identity-provider boundary: it turns an opaque
// credential into a verified identity or fails with ErrUnauthenticated.
// Credentials are short-lived, supplied per request, and never persisted.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// JWTVerifier validates HMAC-signed id tokens carrying sub and email claims.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	uid, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if uid == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	return domain.Identity{UID: uid, Email: email}, nil
}
