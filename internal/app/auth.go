// internal/app/auth.go
package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"
)

var (
	ErrUnknownInterviewer = errors.New("no token for interviewer")
	ErrInvalidToken       = errors.New("invalid token")
)

// Auth checks interviewer tokens before an appeal is written to the ledger. Tokens live
// in redis hashes with a "token" field, one per interviewer.
type Auth struct {
	enabled     bool
	redis       *redis.Client
	keyTemplate string
	tokenHeader string
}

func NewAuth(config *Config) (*Auth, error) {
	if !config.Server.EnableAuth {
		return &Auth{enabled: false, tokenHeader: config.Auth.TokenHeader}, nil
	}

	opt, err := redis.ParseURL(config.Auth.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Auth{
		enabled:     true,
		redis:       client,
		keyTemplate: config.Auth.TokenKeyTemplate,
		tokenHeader: config.Auth.TokenHeader,
	}, nil
}

func (a *Auth) Enabled() bool {
	return a.enabled
}

func (a *Auth) TokenHeader() string {
	return a.tokenHeader
}

func (a *Auth) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

func (a *Auth) key(interviewer string) string {
	return strings.NewReplacer("{interviewer}", interviewer).Replace(a.keyTemplate)
}

func (a *Auth) ValidateToken(ctx context.Context, interviewer, token string) error {
	if !a.enabled {
		return nil
	}

	if interviewer == "" {
		return ErrUnknownInterviewer
	}

	key := a.key(interviewer)
	stored, err := a.redis.HGet(ctx, key, "token").Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug.Printf("No token stored at %s", key)
		return fmt.Errorf("%w %q", ErrUnknownInterviewer, interviewer)
	}
	if err != nil {
		return fmt.Errorf("failed to read token for %q: %w", interviewer, err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		logger.Debug.Printf("Token mismatch for interviewer %s", interviewer)
		return fmt.Errorf("%w for interviewer %q", ErrInvalidToken, interviewer)
	}

	if err := a.redis.HIncrBy(ctx, key, "request_count", 1).Err(); err != nil {
		logger.Debug.Printf("Failed to count request for %s: %v", key, err)
	}
	return nil
}
