package game

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// Registry maps maze IDs to published grids, letting the session layer
// look up a precomputed maze by name. Grids are immutable once stored, so
// concurrent readers are safe; the mutex only guards the map itself.
type Registry struct {
	mu    sync.RWMutex
	mazes map[string]*Grid
}

// NewRegistry creates an empty maze registry.
func NewRegistry() *Registry {
	return &Registry{mazes: make(map[string]*Grid)}
}

// Generate builds a maze, stores it under a fresh ID, and returns both.
func (r *Registry) Generate(cols, rows, complexity int, density float64, rng *rand.Rand) (string, *Grid) {
	g := GenerateMaze(cols, rows, complexity, density, rng)
	id := uuid.NewString()
	r.Put(id, g)
	return id, g
}

// Put stores a grid under the given ID, replacing any previous entry
// wholesale (grids are never mutated in place).
func (r *Registry) Put(id string, g *Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mazes[id] = g
}

// Get returns the grid stored under id, or false if none exists.
func (r *Registry) Get(id string) (*Grid, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.mazes[id]
	return g, ok
}

// Remove deletes the grid stored under id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.mazes, id)
}
