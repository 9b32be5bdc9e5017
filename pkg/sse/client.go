package sse

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/radworks/radchat/pkg/logger"
)

// Fragment is one decoded text payload from the stream, or a terminal error.
// Fragment boundaries carry no semantic meaning: protocol markers and even
// multi-byte characters may span two fragments.
type Fragment struct {
	Text string
	Err  error
}

// Request is the outbound chat request. One request triggers one stream.
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Model     string `json:"model,omitempty"`
}

// BackendError is an explicit error field sent by the backend inside the
// stream, as opposed to a transport failure.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// dataPrefix tags every non-empty stream record; doneSentinel ends it.
const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

// record is the JSON object carried by each data record.
type record struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Client streams chat responses from the radchat backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a streaming client for the given backend URL.
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 90*time.Second)
}

// NewClientWithTimeout creates a streaming client with a custom overall
// request timeout.
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StreamChat sends one chat request and returns a channel of fragments, one
// per stream record. The channel is closed exactly once, on end-of-stream or
// after a terminal error fragment. No recovery is attempted on transport
// errors; the caller marks the turn failed.
func (c *Client) StreamChat(ctx context.Context, req Request) (<-chan Fragment, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/stream", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		errorBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("request failed with status %d (failed to read error response: %w)", resp.StatusCode, readErr)
		}

		var errorResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(errorBody, &errorResp) == nil && errorResp.Error != "" {
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, errorResp.Error)
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(errorBody))
	}

	fragments := make(chan Fragment, 100)
	go c.readStream(ctx, resp.Body, fragments)
	return fragments, nil
}

// readStream pulls records off the response body and yields one fragment per
// read. Completion is signalled exactly once, by closing the channel.
func (c *Client) readStream(ctx context.Context, body io.ReadCloser, fragments chan<- Fragment) {
	defer close(fragments)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			fragments <- Fragment{Err: ctx.Err()}
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, dataPrefix) {
			logger.Debug("sse: ignoring record without data tag: %q", line)
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
		if payload == doneSentinel {
			return
		}

		var rec record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			logger.Warn("sse: skipping malformed record: %v", err)
			continue
		}

		if rec.Error != "" {
			fragments <- Fragment{Err: &BackendError{Message: rec.Error}}
			return
		}
		fragments <- Fragment{Text: rec.Text}
	}

	if err := scanner.Err(); err != nil {
		fragments <- Fragment{Err: fmt.Errorf("stream reading error: %w", err)}
	}
}
