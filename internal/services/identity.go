package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the bearer credentials of the API.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// Issue signs a token for userID and returns it with its expiry.
func (s *TokenService) Issue(userID uint) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ResolveCaller returns the user id bound to token, or ErrUnauthenticated.
func (s *TokenService) ResolveCaller(token string) (uint, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, newError(ErrUnauthenticated, "Unauthorized, please login first")
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, newError(ErrUnauthenticated, "Session expired, please login again")
		}
		return 0, newError(ErrUnauthenticated, "Invalid token, please login again")
	}
	if claims.UserID == 0 {
		return 0, newError(ErrUnauthenticated, "Invalid token, please login again")
	}
	return claims.UserID, nil
}
