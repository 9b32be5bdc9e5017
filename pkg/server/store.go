package server

import (
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/radworks/radchat/pkg/logger"
)

// Session is one conversation's model-side history, keyed by
// "<session_id>:<model>" so switching models starts a fresh exchange.
type Session struct {
	Key      string
	History  []llms.MessageContent
	lastUsed time.Time
}

// Store keeps sessions in memory with LRU eviction and a TTL. There is no
// cross-restart persistence; a lost session just means a fresh conversation.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
}

const (
	DefaultMaxSessions = 100
	DefaultSessionTTL  = time.Hour
)

func NewStore(maxSize int, ttl time.Duration) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		maxSize:  maxSize,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for key, creating it if absent. Expired sessions
// are replaced transparently.
func (s *Store) Get(key string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.expireLocked(now)

	if sess, ok := s.sessions[key]; ok {
		sess.lastUsed = now
		return sess
	}

	s.evictLocked()
	sess := &Session{Key: key, lastUsed: now}
	s.sessions[key] = sess
	return sess
}

// Update replaces a session's history and refreshes its recency.
func (s *Store) Update(key string, history []llms.MessageContent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[key]; ok {
		sess.History = history
		sess.lastUsed = s.now()
	}
}

// DeletePrefix removes every session whose key starts with prefix and
// returns how many were cleared.
func (s *Store) DeletePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.sessions {
		if strings.HasPrefix(key, prefix) {
			delete(s.sessions, key)
			count++
		}
	}
	return count
}

// Len reports the live session count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expireLocked(now time.Time) {
	for key, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.ttl {
			logger.Debug("server: session %s expired", key)
			delete(s.sessions, key)
		}
	}
}

// evictLocked drops the least recently used session to make room for one
// more. Called before every insert.
func (s *Store) evictLocked() {
	if len(s.sessions) < s.maxSize {
		return
	}
	var oldestKey string
	var oldest time.Time
	for key, sess := range s.sessions {
		if oldestKey == "" || sess.lastUsed.Before(oldest) {
			oldestKey = key
			oldest = sess.lastUsed
		}
	}
	if oldestKey != "" {
		logger.Debug("server: evicting session %s", oldestKey)
		delete(s.sessions, oldestKey)
	}
}
