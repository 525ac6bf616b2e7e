// Package jwt реализует генерацию и парсинг JWT токенов с назначением (scope).
//
// Каждый токен несёт email пользователя и claim "scope", ограничивающий,
// какая операция может этот токен потребить: доступ к API или подтверждение
// электронной почты. Токен с неподходящим scope отвергается при парсинге.
package jwt

import (
	"time"
)

const (
	// ScopeAccess назначение токена для доступа к защищённым маршрутам API.
	ScopeAccess = "access_token"
	// ScopeVerification назначение токена для подтверждения электронной почты.
	ScopeVerification = "verification_token"
)

// Maker описывает интерфейс для генерации и парсинга токенов с scope.
type Maker interface {
	// GenerateAccessToken выпускает токен со scope "access_token".
	GenerateAccessToken(email string) (string, error)
	// GenerateVerificationToken выпускает токен со scope "verification_token".
	GenerateVerificationToken(email string) (string, error)
	// ParseToken разбирает токен и проверяет, что его scope равен expectedScope.
	ParseToken(tokenStr, expectedScope string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и отдельного времени жизни для каждого назначения токена.
type MakerImpl struct {
	secretKey       string
	accessTTL       time.Duration
	verificationTTL time.Duration
}

// NewJWTMaker создаёт новый экземпляр MakerImpl.
func NewJWTMaker(secretKey string, accessTTL, verificationTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:       secretKey,
		accessTTL:       accessTTL,
		verificationTTL: verificationTTL,
	}
}
