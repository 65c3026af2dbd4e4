package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"mitche/backend/internal/constants"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// SessionData represents an authenticated user's session. The symbolic name
// is the pseudonymous display identity, never the login username.
type SessionData struct {
	SessionID    string         `json:"session_id"`
	UserID       string         `json:"user_id"`
	SymbolicName string         `json:"symbolic_name"`
	Role         constants.Role `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	ExpiresAt    time.Time      `json:"expires_at"`
}

// SessionService manages user sessions in Redis
type SessionService struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(redis *redis.Client) *SessionService {
	return &SessionService{
		redis: redis,
		ttl:   7 * 24 * time.Hour,
	}
}

// CreateSession creates a new session for a user
func (s *SessionService) CreateSession(ctx context.Context, userID, symbolicName string, role constants.Role) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := SessionData{
		SessionID:    sessionID,
		UserID:       userID,
		SymbolicName: symbolicName,
		Role:         role,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return sessionID, nil
}

// GetSession retrieves a session from Redis
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

// DeleteSession removes a session (logout)
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
