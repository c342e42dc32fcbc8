package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediacheck/core/interfaces"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_SetGetDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "news:abc", []byte(`{"prediction":"Real"}`), time.Hour))

	got, err := client.Get(ctx, "news:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"prediction":"Real"}`, string(got))

	require.NoError(t, client.Delete(ctx, "news:abc"))
	_, err = client.Get(ctx, "news:abc")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestClient_Expiration(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "short", []byte("v"), 30*time.Millisecond))
	time.Sleep(60 * time.Millisecond)

	_, err := client.Get(ctx, "short")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)

	stats, err := client.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["expired_entries"])

	client.cleanup()
	stats, err = client.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["total_entries"])
}

func TestClient_ZeroTTLNeverExpires(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "forever", []byte("v"), 0))
	client.cleanup()

	got, err := client.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestClient_InvalidInput(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.Error(t, client.Set(ctx, "", []byte("v"), time.Hour))
	assert.Error(t, client.Set(ctx, "k", nil, time.Hour))
	_, err := client.Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, client.Delete(ctx, ""))
}

// Stored values must come back byte for byte, including media blobs.
func TestClient_DataIntegrity(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"simple text", []byte("Hello, World!")},
		{"binary", []byte{0x00, 0x01, 0xFF, 0xFE}},
		{"large", bytes.Repeat([]byte{0xAB}, 1<<20)},
		{"all bytes", allBytes},
		{"utf8", []byte("Hello 世界 🌍 \n\t")},
		{"null separated", []byte("video/mp4\x00payload")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "media:" + tt.name
			require.NoError(t, client.Set(ctx, key, tt.data, time.Hour))

			got, err := client.Get(ctx, key)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tt.data, got))
		})
	}
}

func TestClient_SQLInKeysIsData(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := "view:x';DROP TABLE cache;--"
	require.NoError(t, client.Set(ctx, key, []byte("v"), time.Hour))

	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	stats, err := client.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["total_entries"])
}

func TestClient_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	first, err := NewSQLiteCache(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte("survives"), time.Hour))
	require.NoError(t, first.Close())

	second, err := NewSQLiteCache(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "survives", string(got))
}

func TestClient_Ping(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, client.Ping(context.Background()))
}
