package harness

import (
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator produces run tokens. A token tags one run in logs and in
// the trace store so overlapping or successive runs stay distinguishable.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens, so tokens sort
// by run start time. Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string. Panics if UUID
// generation fails, which cannot happen in practice.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens in order, for deterministic
// tests and golden traces. Safe for concurrent use.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that yields tokens in the given
// order and panics when exhausted, so a test consuming more runs than it
// planned for fails loudly.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		panic("harness: fixed token generator exhausted")
	}
	t := g.tokens[g.idx]
	g.idx++
	return t
}
