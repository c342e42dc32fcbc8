package standard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPublicAddr(t *testing.T) {
	tests := []struct {
		addr   string
		public bool
	}{
		{"93.184.216.34", true},
		{"2606:4700:4700::1111", true},
		{"127.0.0.1", false},
		{"::1", false},
		{"10.1.2.3", false},
		{"172.16.0.1", false},
		{"192.168.1.1", false},
		{"169.254.169.254", false},
		{"fe80::1", false},
		{"fd00::1", false},
		{"0.0.0.0", false},
		{"::", false},
		{"100.64.0.1", false},
		{"224.0.0.1", false},
		{"::ffff:127.0.0.1", false},
		{"::ffff:8.8.8.8", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.public, IsPublicAddr(netip.MustParseAddr(tt.addr)))
		})
	}
}

func TestPublicHTTPClient_RefusesLoopback(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("internal"))
	}))
	defer server.Close()

	client := NewPublicHTTPClient(5*time.Second, nil)
	resp, err := client.Get(context.Background(), server.URL+"/admin")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrBlockedAddress)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestPublicHTTPClient_RefusesLoopbackPost(t *testing.T) {
	var hits int32
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer internal.Close()

	client := NewPublicHTTPClient(5*time.Second, nil)
	_, err := client.Post(context.Background(), internal.URL, "text/plain", nil)

	assert.ErrorIs(t, err, ErrBlockedAddress)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestPublicOnlyControl_RejectsMalformedAddress(t *testing.T) {
	assert.ErrorIs(t, publicOnlyControl("tcp", "not-an-address", nil), ErrBlockedAddress)
	assert.ErrorIs(t, publicOnlyControl("tcp", "localhost:80", nil), ErrBlockedAddress)
	assert.NoError(t, publicOnlyControl("tcp", "93.184.216.34:443", nil))
}
