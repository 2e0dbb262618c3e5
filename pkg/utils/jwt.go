package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sessions are stateless: there is no revocation list, a token is good
// until its embedded expiry. 30 days, matching the extension's
// long-lived sign-in.
const TokenValidity = 30 * 24 * time.Hour

var jwtKey []byte

// InitSigningKey installs the process-wide signing secret. The process
// must not serve requests without one.
func InitSigningKey(secret string) error {
	if secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	jwtKey = []byte(secret)
	return nil
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func CreateToken(userID uuid.UUID, email string) (string, error) {
	if len(jwtKey) == 0 {
		return "", errors.New("signing key not initialized")
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidCredential
	}

	return claims, nil
}
