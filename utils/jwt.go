package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"techvisit/config"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "techvisit-dev"
	}
	return []byte(secret)
}

// GenerateAdminToken creates a signed JWT for the admin portal session.
// The token expires after the specified duration.
func GenerateAdminToken(duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// IsAdminToken reports whether the token string is a valid admin session token.
func IsAdminToken(tokenString string) bool {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "admin"
}
