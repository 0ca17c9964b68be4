// Package auth implements the session token contract: stateless HS256 JWTs
// carrying only the user id and an expiry, plus password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/akolosov/fincoach/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims and a single custom UserID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs a token binding userID to an expiry of
// now+validityDuration. Nothing else is embedded; the token is not
// revocable before expiry.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the token and returns the embedded user id.
// Verification fails closed: expired tokens yield common.ErrorUnauthorized,
// any other defect yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
