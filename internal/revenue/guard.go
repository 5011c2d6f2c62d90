package revenue

import (
	"fmt"
	"sync"
)

// Guard enforces single-flight per seller across the conversion and
// payout workflows. It replaces the scattered in-progress booleans of
// the original profile page with one explicit acquire/release point.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{
		inFlight: make(map[string]struct{}),
	}
}

// Begin marks a seller's workflow as in flight. The caller must End
// with the same seller id once the workflow finishes.
func (g *Guard) Begin(sellerId string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.inFlight[sellerId]; exists {
		return fmt.Errorf("%w: %s", ErrOperationInFlight, sellerId)
	}
	g.inFlight[sellerId] = struct{}{}
	return nil
}

func (g *Guard) End(sellerId string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, sellerId)
}
