package core

import (
	"sync"

	"github.com/edulive/lecturechat/internal/domain"
)

// DefaultHistorySize is the per-room replay window.
const DefaultHistorySize = 30

// HistoryBuffer is a bounded FIFO of the most recent messages in one room.
// Append evicts from the head once the capacity is reached, so the buffer
// always holds the last min(cap, total appended) messages in append order.
type HistoryBuffer struct {
	mu       sync.Mutex
	capacity int
	messages []domain.Message
}

func NewHistoryBuffer(capacity int) *HistoryBuffer {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &HistoryBuffer{
		capacity: capacity,
		messages: make([]domain.Message, 0, capacity),
	}
}

func (h *HistoryBuffer) Append(msg domain.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.messages) == h.capacity {
		copy(h.messages, h.messages[1:])
		h.messages = h.messages[:h.capacity-1]
	}
	h.messages = append(h.messages, msg)
}

// Snapshot returns a copy of the current contents in append order.
func (h *HistoryBuffer) Snapshot() []domain.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *HistoryBuffer) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}
