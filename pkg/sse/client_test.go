package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, fragments <-chan Fragment) []Fragment {
	t.Helper()
	var out []Fragment
	timeout := time.After(5 * time.Second)
	for {
		select {
		case f, ok := <-fragments:
			if !ok {
				return out
			}
			out = append(out, f)
		case <-timeout:
			t.Fatal("timed out waiting for stream to close")
		}
	}
}

func streamHandler(t *testing.T, lines ...string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/stream", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, line := range lines {
			fmt.Fprintf(w, "%s\n", line)
			flusher.Flush()
		}
	}
}

func TestStreamChat_YieldsOneFragmentPerRecord(t *testing.T) {
	server := httptest.NewServer(streamHandler(t,
		`data: {"text": "Paging "}`,
		"",
		`data: {"text": "the reading room"}`,
		`data: [DONE]`,
	))
	defer server.Close()

	client := NewClient(server.URL)
	fragments, err := client.StreamChat(context.Background(), Request{Message: "hi", SessionID: "s1"})
	require.NoError(t, err)

	got := collect(t, fragments)
	require.Len(t, got, 2)
	assert.Equal(t, "Paging ", got[0].Text)
	assert.Equal(t, "the reading room", got[1].Text)
	assert.NoError(t, got[0].Err)
}

func TestStreamChat_SendsSessionAndModel(t *testing.T) {
	var captured Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprintln(w, `data: [DONE]`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	fragments, err := client.StreamChat(context.Background(), Request{
		Message:   "who covers CT tonight",
		SessionID: "abc-123",
		Model:     "gpt-4o",
	})
	require.NoError(t, err)
	collect(t, fragments)

	assert.Equal(t, "who covers CT tonight", captured.Message)
	assert.Equal(t, "abc-123", captured.SessionID)
	assert.Equal(t, "gpt-4o", captured.Model)
}

func TestStreamChat_BackendErrorTerminatesStream(t *testing.T) {
	server := httptest.NewServer(streamHandler(t,
		`data: {"text": "partial"}`,
		`data: {"error": "model unavailable"}`,
		`data: {"text": "never delivered"}`,
	))
	defer server.Close()

	client := NewClient(server.URL)
	fragments, err := client.StreamChat(context.Background(), Request{Message: "hi", SessionID: "s1"})
	require.NoError(t, err)

	got := collect(t, fragments)
	require.Len(t, got, 2)
	assert.Equal(t, "partial", got[0].Text)

	var backendErr *BackendError
	require.ErrorAs(t, got[1].Err, &backendErr)
	assert.Equal(t, "model unavailable", backendErr.Message)
}

func TestStreamChat_SkipsMalformedRecords(t *testing.T) {
	server := httptest.NewServer(streamHandler(t,
		`data: {not json`,
		`data: {"text": "still streaming"}`,
		`data: [DONE]`,
	))
	defer server.Close()

	client := NewClient(server.URL)
	fragments, err := client.StreamChat(context.Background(), Request{Message: "hi", SessionID: "s1"})
	require.NoError(t, err)

	got := collect(t, fragments)
	require.Len(t, got, 1)
	assert.Equal(t, "still streaming", got[0].Text)
}

func TestStreamChat_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `{"error": "backend offline"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.StreamChat(context.Background(), Request{Message: "hi", SessionID: "s1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "backend offline")
}

func TestStreamChat_EmptyTextRecordStillYields(t *testing.T) {
	server := httptest.NewServer(streamHandler(t,
		`data: {"text": ""}`,
		`data: [DONE]`,
	))
	defer server.Close()

	client := NewClient(server.URL)
	fragments, err := client.StreamChat(context.Background(), Request{Message: "hi", SessionID: "s1"})
	require.NoError(t, err)

	got := collect(t, fragments)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Text)
}
