package jwt

import (
	"fmt"
	"time"

	"wedsite/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// NewToken issues an HS256 token carrying the user id and role.
func NewToken(user models.User, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = user.ID.String()
	claims["role"] = string(user.Role)
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Claims are the verified fields handlers care about.
type Claims struct {
	UserID string
	Role   models.Role
}

// Parse verifies signature and expiry and extracts the claims.
func Parse(tokenString, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("invalid token claims")
	}

	uid, _ := mapClaims["uid"].(string)
	role, _ := mapClaims["role"].(string)
	if uid == "" {
		return Claims{}, fmt.Errorf("missing uid claim")
	}

	return Claims{UserID: uid, Role: models.Role(role)}, nil
}
