package detection

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"mediacheck/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	mu       sync.Mutex
	posts    int
	getFunc  func(ctx context.Context, url string) (interfaces.Response, error)
	postFunc func(ctx context.Context, url, contentType string, body io.Reader) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url, contentType string, body io.Reader) (interfaces.Response, error) {
	m.mu.Lock()
	m.posts++
	m.mu.Unlock()
	if m.postFunc != nil {
		return m.postFunc(ctx, url, contentType, body)
	}
	return nil, nil
}

func (m *mockHTTPClient) postCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posts
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int      { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser  { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(string) string { return "" }

func respond(status int, body string) func(context.Context, string, string, io.Reader) (interfaces.Response, error) {
	return func(context.Context, string, string, io.Reader) (interfaces.Response, error) {
		return &mockResponse{statusCode: status, body: body}, nil
	}
}

// mapCache is a minimal in-memory Cache for tests
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// mockLogger records log calls
type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.Called(msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.Called(msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.Called(msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.Called(msg, fields) }
