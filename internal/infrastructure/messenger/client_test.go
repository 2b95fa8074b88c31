package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/config"
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.BotMetrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.NewBotMetrics(prometheus.NewRegistry())
	client := NewClient(config.Messenger{
		GraphAPIURL:     srv.URL + "/v18.0/",
		PageAccessToken: "page-token",
		SendTimeout:     2 * time.Second,
	}, logger.NewNoOp(), m)
	return client, m
}

func TestSend_Envelope(t *testing.T) {
	var got sendRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v18.0/me/messages", r.URL.Path)
		assert.Equal(t, "page-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"recipient_id":"psid-1","message_id":"mid.1"}`))
	})

	err := client.Send(context.Background(), "psid-1", domain.OutboundMessage{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "psid-1", got.Recipient.ID)
	assert.Equal(t, "hello", got.Message.Text)
}

func TestSend_GraphError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`))
	})

	err := client.Send(context.Background(), "psid-1", domain.OutboundMessage{Text: "hello"})
	var se *SendError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, 190, se.Code)
	assert.Equal(t, "Invalid OAuth access token.", se.Message)
}

func TestDispatch_SwallowsFailureWithoutRetry(t *testing.T) {
	var calls int32
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.NotPanics(t, func() {
		client.Dispatch(context.Background(), "psid-1", domain.OutboundMessage{Text: "hello"})
	})
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReplyFailuresTotal.WithLabelValues("http_500")))
}

func TestDispatch_CountsSuccess(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	client.Dispatch(context.Background(), "psid-2", domain.OutboundMessage{Text: "menu"})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RepliesSentTotal.WithLabelValues("text")))
}

func TestDispatch_TransportFailureHidesAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	unreachable := srv.URL
	srv.Close()

	var logs bytes.Buffer
	m := metrics.NewBotMetrics(prometheus.NewRegistry())
	client := NewClient(config.Messenger{
		GraphAPIURL:     unreachable,
		PageAccessToken: "SECRET-PAGE-TOKEN",
		SendTimeout:     time.Second,
	}, logger.NewWithWriter(config.LogConfig{LogLevel: "debug", LogFormat: "text"}, &logs), m)

	err := client.Send(context.Background(), "psid-1", domain.OutboundMessage{Text: "hello"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-PAGE-TOKEN")

	client.Dispatch(context.Background(), "psid-1", domain.OutboundMessage{Text: "hello"})
	assert.Contains(t, logs.String(), "unable to send message")
	assert.NotContains(t, logs.String(), "SECRET-PAGE-TOKEN")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReplyFailuresTotal.WithLabelValues("transport")))
}
