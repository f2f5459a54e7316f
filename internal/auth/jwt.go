// Package auth issues and validates the HS256 tokens that bind a persisted
// session to its identity.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gameshelf/internal/common"
)

// Claims carries the registered claims plus the identity id the session
// belongs to.
type Claims struct {
	jwt.RegisteredClaims
	IdentityID int64 `json:"identity_id"`
}

// GenerateToken signs a session token for identityID, valid for the given
// duration starting at now.
func GenerateToken(identityID int64, secretKey []byte, validity time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identityID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		IdentityID: identityID,
	})

	return token.SignedString(secretKey)
}

// IdentityIDFromToken validates tokenString and returns the embedded
// identity id. Expired or tampered tokens return an error.
func IdentityIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return 0, err
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.IdentityID, nil
}
