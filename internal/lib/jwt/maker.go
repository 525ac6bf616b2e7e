package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidScope возвращается, когда scope токена не совпадает с ожидаемым
// для вызывающей операции.
var ErrInvalidScope = errors.New("invalid scope for token")

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"user_email"` // Электронная почта пользователя
	Scope                string `json:"scope"`      // Назначение токена
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateAccessToken создает JWT токен доступа для пользователя с указанным email.
func (j *MakerImpl) GenerateAccessToken(email string) (string, error) {
	return j.generate(email, ScopeAccess, j.accessTTL)
}

// GenerateVerificationToken создает JWT токен подтверждения почты.
func (j *MakerImpl) GenerateVerificationToken(email string) (string, error) {
	return j.generate(email, ScopeVerification, j.verificationTTL)
}

func (j *MakerImpl) generate(email, scope string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		Email: email,
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись, срок действия и scope,
// возвращает CustomClaims с данными, если токен корректен.
//
// Просроченный токен отвергается независимо от валидности подписи.
func (j *MakerImpl) ParseToken(tokenStr, expectedScope string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Scope != expectedScope {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidScope)
	}
	return claims, nil
}
