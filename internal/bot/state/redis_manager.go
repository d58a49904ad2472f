package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/health-advisor/internal/config"
	"github.com/vladimiradmaev/health-advisor/internal/domain"
	"github.com/vladimiradmaev/health-advisor/internal/logger"
)

// RedisManager manages user states using Redis. Every key expires after ttl
// so abandoned forms are cleaned up.
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(ctx context.Context, cfg config.RedisConfig) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{
		client: client,
		ttl:    cfg.SessionTTL,
	}, nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

func inputsKey(userID int64) string {
	return fmt.Sprintf("user:%d:inputs", userID)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(ctx context.Context, userID int64, state string) {
	if err := m.client.Set(ctx, stateKey(userID), state, m.ttl).Err(); err != nil {
		logger.Warn("Failed to store user state", "user_id", userID, "error", err)
	}
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(ctx context.Context, userID int64) string {
	state, err := m.client.Get(ctx, stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return None
	}
	if err != nil {
		logger.Warn("Failed to read user state", "user_id", userID, "error", err)
		return None
	}
	return state
}

// SetInput stores one raw form value in the user's inputs hash
func (m *RedisManager) SetInput(ctx context.Context, userID int64, field domain.Field, value string) {
	key := inputsKey(userID)
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, string(field), value)
		pipe.Expire(ctx, key, m.ttl)
		return nil
	})
	if err != nil {
		logger.Warn("Failed to store form input", "user_id", userID, "field", field, "error", err)
	}
}

// GetInputs returns the raw form values collected so far
func (m *RedisManager) GetInputs(ctx context.Context, userID int64) domain.Inputs {
	values, err := m.client.HGetAll(ctx, inputsKey(userID)).Result()
	if err != nil {
		logger.Warn("Failed to read form inputs", "user_id", userID, "error", err)
		return domain.Inputs{}
	}
	return domain.Inputs{
		Weight:   values[string(domain.FieldWeight)],
		Height:   values[string(domain.FieldHeight)],
		Age:      values[string(domain.FieldAge)],
		FoodName: values[string(domain.FieldFoodName)],
	}
}

// Clear drops state and inputs for a user
func (m *RedisManager) Clear(ctx context.Context, userID int64) {
	if err := m.client.Del(ctx, stateKey(userID), inputsKey(userID)).Err(); err != nil {
		logger.Warn("Failed to clear user session", "user_id", userID, "error", err)
	}
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
