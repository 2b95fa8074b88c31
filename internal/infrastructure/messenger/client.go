package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/config"
	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/LavaJover/shvark-foodbot-service/internal/infrastructure/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBody = 4 << 10

type recipient struct {
	ID string `json:"id"`
}

type sendRequest struct {
	Recipient     recipient              `json:"recipient"`
	MessagingType string                 `json:"messaging_type"`
	Message       domain.OutboundMessage `json:"message"`
}

type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendError is a non-2xx answer from the send API.
type SendError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send API returned %d (code %d): %s", e.StatusCode, e.Code, e.Message)
}

// Client is the outbound dispatcher for the Graph send API.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	logger      *slog.Logger
	metrics     *metrics.BotMetrics
}

func NewClient(cfg config.Messenger, logger *slog.Logger, m *metrics.BotMetrics) *Client {
	return &Client{
		endpoint:    strings.TrimRight(cfg.GraphAPIURL, "/") + "/me/messages",
		accessToken: cfg.PageAccessToken,
		httpClient: &http.Client{
			Timeout:   cfg.SendTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:  logger,
		metrics: m,
	}
}

// Send makes exactly one call to the send API.
func (c *Client) Send(ctx context.Context, recipientID string, msg domain.OutboundMessage) error {
	body, err := json.Marshal(sendRequest{
		Recipient:     recipient{ID: recipientID},
		MessagingType: "RESPONSE",
		Message:       msg,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	target := c.endpoint + "?access_token=" + url.QueryEscape(c.accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error quotes the full URL, access token included
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("send request to %s failed: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	sendErr := &SendError{StatusCode: resp.StatusCode, Message: string(raw)}
	var ge graphError
	if json.Unmarshal(raw, &ge) == nil && ge.Error.Message != "" {
		sendErr.Code = ge.Error.Code
		sendErr.Message = ge.Error.Message
	}
	return sendErr
}

// Dispatch sends msg and only logs a failure; there is no retry.
func (c *Client) Dispatch(ctx context.Context, recipientID string, msg domain.OutboundMessage) {
	started := time.Now()
	err := c.Send(ctx, recipientID, msg)
	if err == nil {
		c.metrics.RecordReplySent("text", time.Since(started))
		c.logger.Debug("message sent", slog.String("recipient", recipientID))
		return
	}

	reason := "transport"
	var se *SendError
	if errors.As(err, &se) {
		reason = fmt.Sprintf("http_%d", se.StatusCode)
	}
	c.metrics.RecordReplyFailure(reason)
	c.logger.Error("unable to send message",
		slog.String("recipient", recipientID),
		slog.String("error", err.Error()),
	)
}
