package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/radworks/radchat/pkg/config"
	"github.com/radworks/radchat/pkg/logger"
	"github.com/radworks/radchat/pkg/provider"
	"github.com/radworks/radchat/pkg/tools"
)

// Streamer runs one assistant response, emitting text and tool markers in
// stream order. Satisfied by provider.Assistant.
type Streamer interface {
	ChatStream(ctx context.Context, history []llms.MessageContent, emit func(text string) error) ([]llms.MessageContent, error)
}

// StreamerFactory builds a streamer for the requested model.
type StreamerFactory func(model string) (Streamer, error)

// Server is the chat backend.
type Server struct {
	cfg        *config.Config
	registry   *tools.Registry
	store      *Store
	newStream  StreamerFactory
	reqTimeout time.Duration
}

// New assembles the backend around a tool registry and a streamer factory.
func New(cfg *config.Config, registry *tools.Registry, factory StreamerFactory) *Server {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Server{
		cfg:        cfg,
		registry:   registry,
		store:      NewStore(cfg.Server.SessionMax, cfg.Server.SessionTTL),
		newStream:  factory,
		reqTimeout: timeout,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /models", s.handleModels)
	mux.HandleFunc("GET /tools", s.handleTools)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /chat/stream", s.handleChatStream)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleClearSession)
	return mux
}

// ListenAndServe blocks serving the backend until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("server: listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Model     string `json:"model"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "radchat",
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"models": provider.ListModels(),
	})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": s.registry.Definitions(),
	})
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	cleared := s.store.DeletePrefix(sessionID + ":")
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "cleared",
		"session_id": sessionID,
		"cleared":    cleared,
	})
}

// handleChat answers without streaming: the full agentic loop runs and only
// the final text comes back.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, errStatus, errMsg := s.parseChatRequest(r)
	if errMsg != "" {
		writeJSON(w, errStatus, map[string]any{"error": errMsg})
		return
	}

	streamer, err := s.newStream(req.Model)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": fmt.Sprintf("Failed to create session: %v", err)})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.reqTimeout)
	defer cancel()

	key := sessionKey(req.SessionID, req.Model)
	session := s.store.Get(key)
	history := append(session.History, llms.TextParts(llms.ChatMessageTypeHuman, req.Message))

	appended, err := streamer.ChatStream(ctx, history, func(string) error { return nil })
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	s.store.Update(key, append(history, appended...))

	writeJSON(w, http.StatusOK, map[string]any{
		"response":   finalText(appended),
		"session_id": req.SessionID,
	})
}

// handleChatStream streams the turn as newline-delimited data records ending
// with the done sentinel. Errors mid-stream become an error record; the
// sentinel is always sent.
func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	req, errStatus, errMsg := s.parseChatRequest(r)
	if errMsg != "" {
		writeJSON(w, errStatus, map[string]any{"error": errMsg})
		return
	}

	streamer, err := s.newStream(req.Model)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": fmt.Sprintf("Failed to create session: %v", err)})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx, cancel := context.WithTimeout(r.Context(), s.reqTimeout)
	defer cancel()

	key := sessionKey(req.SessionID, req.Model)
	session := s.store.Get(key)
	history := append(session.History, llms.TextParts(llms.ChatMessageTypeHuman, req.Message))

	emit := func(text string) error {
		record, err := json.Marshal(map[string]string{"text": text})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", record); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	appended, err := streamer.ChatStream(ctx, history, emit)
	if err != nil {
		logger.Error("server: stream failed for %s: %v", key, err)
		message := err.Error()
		if strings.Contains(strings.ToLower(message), "rate") || strings.Contains(strings.ToLower(message), "too many") {
			message = "Rate limit exceeded. Please wait a moment and try again."
		}
		record, _ := json.Marshal(map[string]string{"error": message})
		fmt.Fprintf(w, "data: %s\n\n", record)
	} else {
		s.store.Update(key, append(history, appended...))
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

func (s *Server) parseChatRequest(r *http.Request) (chatRequest, int, string) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, http.StatusBadRequest, "Invalid request body"
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return req, http.StatusBadRequest, "Message is required"
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}
	if req.Model == "" {
		req.Model = provider.DefaultModel
	}

	// Hosted models need an API token; reject up front rather than failing
	// mid-stream.
	switch s.cfg.Provider {
	case "", "github", "openai":
		if s.cfg.OpenAI.Token == "" {
			return req, http.StatusUnauthorized, "Model API token not configured"
		}
	}
	return req, 0, ""
}

func sessionKey(sessionID, model string) string {
	return sessionID + ":" + model
}

// finalText pulls the text of the last assistant message out of the messages
// a turn appended.
func finalText(appended []llms.MessageContent) string {
	for i := len(appended) - 1; i >= 0; i-- {
		if appended[i].Role != llms.ChatMessageTypeAI {
			continue
		}
		var b strings.Builder
		for _, part := range appended[i].Parts {
			if tc, ok := part.(llms.TextContent); ok {
				b.WriteString(tc.Text)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("server: failed to write response: %v", err)
	}
}
