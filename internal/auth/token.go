package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yukikurage/priority-focus-api/internal/constants"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrMissingBearerToken = errors.New("missing bearer token")
)

// Claims identifies the authenticated manager.
type Claims struct {
	ManagerID uint64 `json:"manager_id"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 bearer tokens.
type TokenManager struct {
	secret   []byte
	duration time.Duration
	issuer   string
	now      func() time.Time
}

func NewTokenManager(secret string, duration time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		duration: duration,
		issuer:   constants.TokenIssuer,
		now:      time.Now,
	}
}

// GenerateToken returns a signed token for the manager and its expiry time.
func (tm *TokenManager) GenerateToken(managerID uint64) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tm.duration)

	claims := Claims{
		ManagerID: managerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    tm.issuer,
			Subject:   strconv.FormatUint(managerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken parses a token and returns its claims.
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithIssuer(tm.issuer), jwt.WithTimeFunc(tm.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.ManagerID == 0 {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts the token from an Authorization header value.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, constants.BearerPrefix) {
		return "", ErrMissingBearerToken
	}
	token := strings.TrimSpace(authHeader[len(constants.BearerPrefix):])
	if token == "" {
		return "", ErrMissingBearerToken
	}
	return token, nil
}
