package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	mu         sync.Mutex
	callback   domain.OrderChangeCallback
	subscribed chan struct{}
	closed     bool
}

func (f *fakeFeed) Subscribe(cb domain.OrderChangeCallback) func() {
	f.mu.Lock()
	f.callback = cb
	f.mu.Unlock()
	f.subscribed <- struct{}{}
	return func() {
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
	}
}

func (f *fakeFeed) emit(change domain.OrderChange) {
	f.mu.Lock()
	cb := f.callback
	f.mu.Unlock()
	cb(change)
}

func (f *fakeFeed) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestOrderChangeStream(t *testing.T) {
	feed := &fakeFeed{subscribed: make(chan struct{}, 1)}
	h := NewOrderChangeStreamHandler(feed, logger.NewNoOp())
	srv := httptest.NewServer(http.HandlerFunc(h.Stream))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	select {
	case <-feed.subscribed:
	case <-time.After(time.Second):
		t.Fatal("stream did not subscribe")
	}

	feed.emit(domain.OrderChange{
		Type:  domain.ChangeUpdate,
		Table: "orders",
		New:   json.RawMessage(`{"id":"o1","order_status":"preparing"}`),
	})

	reader := bufio.NewReader(resp.Body)
	eventLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: UPDATE\n", eventLine)

	dataLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dataLine, "data: "))

	var change domain.OrderChange
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &change))
	assert.Equal(t, domain.ChangeUpdate, change.Type)
	assert.JSONEq(t, `{"id":"o1","order_status":"preparing"}`, string(change.New))

	cancel()
	require.Eventually(t, feed.isClosed, time.Second, 10*time.Millisecond)
}

func TestOrderChangeStream_CloseLetsShutdownFinish(t *testing.T) {
	feed := &fakeFeed{subscribed: make(chan struct{}, 1)}
	h := NewOrderChangeStreamHandler(feed, logger.NewNoOp())
	srv := httptest.NewUnstartedServer(http.HandlerFunc(h.Stream))
	srv.Config.RegisterOnShutdown(h.Close)
	srv.Start()
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	select {
	case <-feed.subscribed:
	case <-time.After(time.Second):
		t.Fatal("stream did not subscribe")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	started := time.Now()
	require.NoError(t, srv.Config.Shutdown(ctx))
	assert.Less(t, time.Since(started), time.Second)

	_, err = io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.True(t, feed.isClosed())
}
