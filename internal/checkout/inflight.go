package checkout

import "sync"

// inflightGuard allows a single active checkout per session key. Both order
// paths share the guard, so a cash and a card submission from the same cart
// state cannot run concurrently.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]struct{})}
}

// begin claims the key, reporting false when a checkout already holds it.
func (g *inflightGuard) begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

func (g *inflightGuard) end(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
