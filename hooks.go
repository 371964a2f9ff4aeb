package cbxmatch

import (
	"sync"

	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/outcome"
)

// Hook function types for matching events
type (
	// OutcomeHook is called for every computed outcome
	OutcomeHook func(o outcome.MatchOutcome)

	// WarningHook is called for every data warning that did not abort the run
	WarningHook func(w *errors.DataWarning)
)

// hooks manages event callbacks of a Matcher
type hooks struct {
	mu        sync.RWMutex
	onOutcome []OutcomeHook
	onWarning []WarningHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnOutcome registers a callback for computed outcomes
func (h *hooks) OnOutcome(fn OutcomeHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onOutcome = append(h.onOutcome, fn)
}

// OnWarning registers a callback for ignored warnings
func (h *hooks) OnWarning(fn WarningHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onWarning = append(h.onWarning, fn)
}

func (h *hooks) triggerOutcome(o outcome.MatchOutcome) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onOutcome {
		fn(o)
	}
}

func (h *hooks) triggerWarning(w *errors.DataWarning) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onWarning {
		fn(w)
	}
}
