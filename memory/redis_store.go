package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultSessionTTL = 60 * time.Minute
	sessionKeyPrefix  = "dialog:"
)

// RedisContextStore persists contexts as JSON blobs with a sliding TTL, so
// idle sessions expire on their own.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisContextStore{client: client, ttl: ttl}
}

// ProvideRedisContextStore connects using the REDIS_URL environment
// variable and verifies the connection before returning.
func ProvideRedisContextStore(ctx context.Context) (*RedisContextStore, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisContextStore(client, defaultSessionTTL), nil
}

func (s *RedisContextStore) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Load reads the session and extends its TTL in the same round trip.
func (s *RedisContextStore) Load(ctx context.Context, sessionID string) (*ConversationContext, error) {
	cmd := s.client.Do(ctx, "GETEX", s.key(sessionID), "EX", int64(s.ttl.Seconds()))
	payload, err := cmd.Text()
	if err != nil {
		if err == redis.Nil {
			return NewConversationContext(sessionID), nil
		}
		return nil, fmt.Errorf("failed to GETEX session: %w", err)
	}

	conversation := &ConversationContext{}
	if err := json.Unmarshal([]byte(payload), conversation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return conversation, nil
}

func (s *RedisContextStore) Save(ctx context.Context, conversation *ConversationContext) error {
	payload, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := s.client.Set(ctx, s.key(conversation.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session data: %w", err)
	}
	return nil
}

func (s *RedisContextStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisContextStore) Close() error {
	return s.client.Close()
}
