package whatsapp

import (
	"sync"

	"github.com/brunohmiro/zapfood/internal/order/domain"
)

// Status holds the process-wide session state. The whatsmeow event handler
// is the only writer; the order path reads it before every customer-facing
// send.
type Status struct {
	mu    sync.RWMutex
	state domain.SessionState
}

func NewStatus() *Status {
	return &Status{state: domain.SessionInitializing}
}

func (s *Status) set(state domain.SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Status) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
