package http

import (
	"log/slog"
	"sync"
)

// StreamManager fans snapshot payloads out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	subscribers map[chan<- []byte]struct{}
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		logger:      logger,
		subscribers: make(map[chan<- []byte]struct{}),
	}
}

// Subscribe returns a buffered channel and a cancel func that closes it.
func (sm *StreamManager) Subscribe() (<-chan []byte, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan []byte, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Len returns the number of active subscribers.
func (sm *StreamManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

func (sm *StreamManager) Broadcast(msg []byte) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Slow client
			sm.logger.Warn("SSE: Client buffer full, dropping snapshot")
		}
	}
}
