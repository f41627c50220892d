package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("bad token")

// Claims — полезная нагрузка токена доступа.
type Claims struct {
	TelegramID int64    `json:"tid"`
	Role       UserRole `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken выпускает HS256-токен для валидированного пользователя.
func IssueToken(secret string, u *User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TelegramID: u.TelegramID,
		Role:       u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.TelegramID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия, возвращая claims.
func ParseToken(secret, raw string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrBadToken, t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if !token.Valid {
		return nil, ErrBadToken
	}
	return &claims, nil
}
