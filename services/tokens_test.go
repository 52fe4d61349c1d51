package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens(t *testing.T) *UnsubscribeTokens {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewUnsubscribeTokens(client)
}

func TestMintAndConsume(t *testing.T) {
	tokens := newTestTokens(t)
	customerID := uuid.New()

	token, err := tokens.Mint(context.Background(), customerID)
	require.NoError(t, err)
	assert.Len(t, token, 32) // 16 random bytes hex-encoded

	resolved, err := tokens.Consume(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, customerID, resolved)
}

func TestConsumeIsOneTime(t *testing.T) {
	tokens := newTestTokens(t)

	token, err := tokens.Mint(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = tokens.Consume(context.Background(), token)
	require.NoError(t, err)

	_, err = tokens.Consume(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestConsumeUnknownToken(t *testing.T) {
	tokens := newTestTokens(t)

	_, err := tokens.Consume(context.Background(), "not-a-real-token")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMintedTokensAreUnique(t *testing.T) {
	tokens := newTestTokens(t)
	customerID := uuid.New()

	first, err := tokens.Mint(context.Background(), customerID)
	require.NoError(t, err)
	second, err := tokens.Mint(context.Background(), customerID)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
