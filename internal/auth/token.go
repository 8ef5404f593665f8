package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed session payload: subject (account email) and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for email, valid for ttl.
func IssueToken(email string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// ResolveToken verifies signature and expiry and returns the subject email.
// Any failure (bad signature, malformed payload, expired token, empty
// subject) yields ok=false so callers uniformly redirect to login instead of
// branching on the failure kind.
func ResolveToken(tokenString string, secret []byte) (email string, ok bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
