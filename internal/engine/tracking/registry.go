package tracking

import (
	"errors"
	"sort"

	"github.com/dshills/nescassist/internal/engine/buffer"
)

// Errors returned by registry operations.
var (
	ErrUnknownCategory = errors.New("unknown position category")
	ErrUnknownPosition = errors.New("position not registered")
)

// Registry holds positions grouped by category.
type Registry struct {
	categories map[string][]*Position
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{categories: make(map[string][]*Position)}
}

// AddCategory registers a category. Adding an existing category is a no-op.
func (r *Registry) AddCategory(name string) {
	if _, ok := r.categories[name]; !ok {
		r.categories[name] = nil
	}
}

// RemoveCategory drops a category and all of its positions.
func (r *Registry) RemoveCategory(name string) error {
	if _, ok := r.categories[name]; !ok {
		return ErrUnknownCategory
	}
	delete(r.categories, name)
	return nil
}

// HasCategory reports whether name is registered.
func (r *Registry) HasCategory(name string) bool {
	_, ok := r.categories[name]
	return ok
}

// Categories returns the registered category names in sorted order.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add registers p under category.
func (r *Registry) Add(category string, p *Position) error {
	positions, ok := r.categories[category]
	if !ok {
		return ErrUnknownCategory
	}
	r.categories[category] = append(positions, p)
	return nil
}

// Remove unregisters p from category.
func (r *Registry) Remove(category string, p *Position) error {
	positions, ok := r.categories[category]
	if !ok {
		return ErrUnknownCategory
	}
	for i, q := range positions {
		if q == p {
			r.categories[category] = append(positions[:i], positions[i+1:]...)
			return nil
		}
	}
	return ErrUnknownPosition
}

// Positions returns the positions registered under category.
func (r *Registry) Positions(category string) []*Position {
	return append([]*Position(nil), r.categories[category]...)
}

// Update adjusts every registered position for c.
func (r *Registry) Update(c buffer.Change) {
	for _, positions := range r.categories {
		for _, p := range positions {
			p.Adjust(c)
		}
	}
}
