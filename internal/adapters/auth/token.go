package auth

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventdesk/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	OrganizationID string   `json:"org_id,omitempty"`
	Roles          []string `json:"roles"`
}

type jwtAuthority struct {
	secret []byte
}

// NewJWTAuthority returns a token issuer/verifier that signs JWTs with HS256
// using the given secret.
func NewJWTAuthority(secret string) *jwtAuthority {
	return &jwtAuthority{secret: []byte(secret)}
}

func (a *jwtAuthority) Issue(userID, organizationID string, roles []string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		OrganizationID: organizationID,
		Roles:          roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (a *jwtAuthority) Verify(tokenString string) (domain.Viewer, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil {
		return domain.Viewer{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return domain.Viewer{}, fmt.Errorf("invalid token")
	}
	return domain.Viewer{
		UserID:          claims.Subject,
		OrganizationID:  claims.OrganizationID,
		IsPlatformAdmin: slices.Contains(claims.Roles, domain.RolePlatformAdmin),
		IsOrganizer:     slices.Contains(claims.Roles, domain.RoleOrganizer),
	}, nil
}
