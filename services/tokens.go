// services/tokens.go
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("unsubscribe token not found or already used")

const unsubscribeTokenTTL = 30 * 24 * time.Hour

// UnsubscribeTokens is a Redis-backed one-time token store. The dispatcher
// mints a token per outbound message for the {unsubscribe_link}; consuming
// a token deletes it, so a link works exactly once.
type UnsubscribeTokens struct {
	client *redis.Client
}

func NewUnsubscribeTokens(client *redis.Client) *UnsubscribeTokens {
	return &UnsubscribeTokens{client: client}
}

func (t *UnsubscribeTokens) Mint(ctx context.Context, customerID uuid.UUID) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	err := t.client.Set(ctx, tokenKey(token), customerID.String(), unsubscribeTokenTTL).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

// Consume resolves the token to a customer and invalidates it atomically.
func (t *UnsubscribeTokens) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := t.client.GetDel(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	customerID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ErrTokenNotFound
	}
	return customerID, nil
}

func tokenKey(token string) string {
	return "unsubscribe:" + token
}
