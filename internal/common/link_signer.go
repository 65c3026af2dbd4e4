package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SignedLink is a validated verification-link token.
type SignedLink struct {
	UserID    string
	Purpose   string
	TokenID   string
	ExpiresAt time.Time
}

// LinkSignerService generates and validates single-use signed links, used
// for verification-review deep links sent to admins.
type LinkSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewLinkSignerService creates a new link signer service
func NewLinkSignerService(secretKey []byte, redis *redis.Client) *LinkSignerService {
	return &LinkSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// GenerateLink generates a single-use signed token
func (s *LinkSignerService) GenerateLink(userID, purpose string, ttl time.Duration) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": purpose,
		"jti":     tokenID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateLink validates a signed token and burns it so it cannot be reused.
func (s *LinkSignerService) ValidateLink(ctx context.Context, tokenString string) (*SignedLink, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := (*claims)["user_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid user_id claim")
	}

	purpose, ok := (*claims)["purpose"].(string)
	if !ok {
		return nil, errors.New("missing or invalid purpose claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	// Single use: the jti is marked in Redis on first validation.
	usedKey := "link_used:" + tokenID
	set, err := s.redis.SetNX(ctx, usedKey, 1, time.Until(expiresAt)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check token reuse: %w", err)
	}
	if !set {
		return nil, errors.New("token already used")
	}

	return &SignedLink{
		UserID:    userID,
		Purpose:   purpose,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}
