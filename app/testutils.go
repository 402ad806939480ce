package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaehyunkim/engage/internal/commentservice"
	"github.com/jaehyunkim/engage/internal/common"
	"github.com/jaehyunkim/engage/internal/counterservice"
	"github.com/jaehyunkim/engage/internal/postservice"
	"github.com/jaehyunkim/engage/internal/searchservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

// capturingPublisher records published notification messages in place of
// a live broker connection.
type capturingPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
}

type publishedMessage struct {
	Key  common.BindingKey
	Body []byte
}

func (p *capturingPublisher) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{Key: key, Body: msg})
	return nil
}

func (p *capturingPublisher) Messages() []publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedMessage(nil), p.messages...)
}

func newTestApplication(t *testing.T) (*application, *capturingPublisher) {
	sessions, err := counterservice.NewSessionResolver("test-secret")
	require.NoError(t, err)

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	posts := postservice.New(t.TempDir())
	publisher := &capturingPublisher{}

	app := &application{
		config: &Config{
			Environment: "test",
			Version:     "test",
			BaseURL:     "https://example.com",
		},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		commentService: commentservice.NewCommentService(commentservice.NewMemStore()),
		counterService: counterservice.NewCounterService(counterservice.NewMemCounterStore(), cache),
		searchService:  searchservice.New(posts),
		postService:    posts,
		sessions:       sessions,
		cache:          cache,
		publisher:      publisher,
	}

	return app, publisher
}

func jsonBody(t *testing.T, data any) io.Reader {
	body, err := json.Marshal(data)
	require.NoError(t, err)
	return bytes.NewReader(body)
}
