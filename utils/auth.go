package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	tokenTypeReset   = "reset"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is what a verified token tells us about its bearer.
type TokenClaims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
	now           func() time.Time
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL, resetTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		resetTTL:      resetTTL,
		now:           time.Now,
	}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// GenerateAccessToken signs a short lived token carrying the user id and role.
func (s *TokenService) GenerateAccessToken(userID, role string) (string, error) {
	return s.sign(s.accessSecret, jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"typ":    tokenTypeAccess,
	}, s.accessTTL)
}

// GenerateRefreshToken signs a long lived token that can only mint access tokens.
func (s *TokenService) GenerateRefreshToken(userID string) (string, error) {
	return s.sign(s.refreshSecret, jwt.MapClaims{
		"userId": userID,
		"typ":    tokenTypeRefresh,
	}, s.refreshTTL)
}

// GenerateResetToken signs a password reset token bound to the current password
// hash, so it stops verifying once the password changes.
func (s *TokenService) GenerateResetToken(userID, passwordHash string) (string, error) {
	return s.sign(s.resetSecret(passwordHash), jwt.MapClaims{
		"userId": userID,
		"typ":    tokenTypeReset,
	}, s.resetTTL)
}

func (s *TokenService) ParseAccessToken(token string) (*TokenClaims, error) {
	return s.parse(token, s.accessSecret, tokenTypeAccess)
}

func (s *TokenService) ParseRefreshToken(token string) (*TokenClaims, error) {
	return s.parse(token, s.refreshSecret, tokenTypeRefresh)
}

// ResetTokenSubject returns the user id of a reset token without verifying it.
// Callers must follow up with ParseResetToken.
func (s *TokenService) ResetTokenSubject(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return "", ErrInvalidToken
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (s *TokenService) ParseResetToken(token, passwordHash string) (*TokenClaims, error) {
	return s.parse(token, s.resetSecret(passwordHash), tokenTypeReset)
}

func (s *TokenService) resetSecret(passwordHash string) []byte {
	secret := make([]byte, 0, len(s.refreshSecret)+len(passwordHash))
	secret = append(secret, s.refreshSecret...)
	return append(secret, passwordHash...)
}

func (s *TokenService) sign(secret []byte, claims jwt.MapClaims, ttl time.Duration) (string, error) {
	now := s.now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *TokenService) parse(tokenString string, secret []byte, typ string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != typ {
		return nil, ErrInvalidToken
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	result := &TokenClaims{UserID: userID, Role: role}
	if exp, ok := claims["exp"].(float64); ok {
		result.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return result, nil
}
