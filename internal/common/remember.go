package common

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RememberClaims carries the email of a "remember me" login, valid for a
// bounded number of days after issue.
type RememberClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RememberToken issues a signed token that stands in for the persisted
// remember-me record. The expiry replaces the original's manual timestamp
// arithmetic.
func RememberToken(secret []byte, email string, validFor time.Duration) (string, error) {
	claims := &RememberClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validFor)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "campuslife",
			Subject:   "remember-me",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// RedeemRememberToken returns the remembered email, or an error when the
// token is expired, tampered with, or signed differently.
func RedeemRememberToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RememberClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*RememberClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid remember token")
	}
	return claims.Email, nil
}
