package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRistrettoRateCache_PutAndGet(t *testing.T) {
	c, err := NewRistrettoRateCache(128)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	c.Put(ctx, "rates.USD.EUR.2024-01-01", "0.9231", time.Minute)
	c.Wait()

	got, ok := c.Get(ctx, "rates.USD.EUR.2024-01-01")
	require.True(t, ok)
	require.Equal(t, "0.9231", got)
}

func TestRistrettoRateCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewRistrettoRateCache(64)
	require.NoError(t, err)
	defer c.Close()

	got, ok := c.Get(context.Background(), "rates.EUR.USD.2024-01-01")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestRistrettoRateCache_DelEvictsOnlyGivenKey(t *testing.T) {
	c, err := NewRistrettoRateCache(256)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	c.Put(ctx, "rates.USD.EUR.2024-01-01", "0.9", time.Minute)
	c.Put(ctx, "rates.USD.JPY.2024-01-01", "150", time.Minute)
	c.Wait()

	c.Del(ctx, "rates.USD.EUR.2024-01-01")

	_, ok := c.Get(ctx, "rates.USD.EUR.2024-01-01")
	require.False(t, ok)

	got, ok := c.Get(ctx, "rates.USD.JPY.2024-01-01")
	require.True(t, ok)
	require.Equal(t, "150", got)
}

func TestRistrettoRateCache_TTLExpires(t *testing.T) {
	c, err := NewRistrettoRateCache(64)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	c.Put(ctx, "rates.USD.EUR.2024-01-01", "0.9", 50*time.Millisecond)
	c.Wait()

	_, ok := c.Get(ctx, "rates.USD.EUR.2024-01-01")
	require.True(t, ok)

	time.Sleep(100 * time.Millisecond)

	_, ok = c.Get(ctx, "rates.USD.EUR.2024-01-01")
	require.False(t, ok)
}
