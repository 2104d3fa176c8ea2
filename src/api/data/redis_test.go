package data

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkSubmission(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	window := 5 * time.Second

	first, err := MarkSubmission(ctx, rdb, "203.0.113.5", window)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := MarkSubmission(ctx, rdb, "203.0.113.5", window)
	require.NoError(t, err)
	assert.False(t, second, "repeat inside the window is flagged")

	other, err := MarkSubmission(ctx, rdb, "203.0.113.9", window)
	require.NoError(t, err)
	assert.True(t, other, "keys are per client")

	mr.FastForward(window)
	again, err := MarkSubmission(ctx, rdb, "203.0.113.5", window)
	require.NoError(t, err)
	assert.True(t, again, "key expires with the window")
}
