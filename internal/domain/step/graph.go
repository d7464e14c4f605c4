package step

import (
	"errors"
	"fmt"
)

// Errors for Graph operations.
var (
	ErrDuplicateStep = errors.New("step with this ID already exists")
	ErrUnknownHandle = errors.New("step depends on a handle that is not in the graph")
)

// Graph is an arena of step definitions addressed by Handle.
// A definition may only depend on handles that were added before it, so
// the graph cannot contain a cycle.
type Graph struct {
	defs  []Definition
	index map[string]Handle
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]Handle),
	}
}

// Len returns the number of steps in the graph.
func (g *Graph) Len() int {
	return len(g.defs)
}

// Add stores a definition and returns its handle.
func (g *Graph) Add(def Definition) (Handle, error) {
	if def.ID.IsZero() {
		return -1, ErrEmptyID
	}
	id := def.ID.String()
	if _, exists := g.index[id]; exists {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateStep, id)
	}
	if def.Install == nil {
		return -1, fmt.Errorf("%w: %q", ErrMissingInstall, id)
	}
	for _, dep := range def.DependsOn {
		if !g.Contains(dep) {
			return -1, fmt.Errorf("%w: step %q depends on handle %d", ErrUnknownHandle, id, dep)
		}
	}

	deps := make([]Handle, len(def.DependsOn))
	copy(deps, def.DependsOn)
	def.DependsOn = deps

	h := Handle(len(g.defs))
	g.defs = append(g.defs, def)
	g.index[id] = h
	return h, nil
}

// MustAdd is Add for statically known graphs; it panics on error.
func (g *Graph) MustAdd(def Definition) Handle {
	h, err := g.Add(def)
	if err != nil {
		panic(err)
	}
	return h
}

// Contains reports whether h refers to a step in the graph.
func (g *Graph) Contains(h Handle) bool {
	return h >= 0 && int(h) < len(g.defs)
}

// Get retrieves a definition by handle.
func (g *Graph) Get(h Handle) (Definition, bool) {
	if !g.Contains(h) {
		return Definition{}, false
	}
	return g.defs[h], true
}

// Lookup finds the handle of the step with the given ID.
func (g *Graph) Lookup(id ID) (Handle, bool) {
	h, ok := g.index[id.String()]
	return h, ok
}

// Handles returns all handles in insertion order, which is also a valid
// dependency order.
func (g *Graph) Handles() []Handle {
	handles := make([]Handle, len(g.defs))
	for i := range g.defs {
		handles[i] = Handle(i)
	}
	return handles
}

// Roots returns handles that nothing depends on, in insertion order.
func (g *Graph) Roots() []Handle {
	dependedOn := make([]bool, len(g.defs))
	for _, def := range g.defs {
		for _, dep := range def.DependsOn {
			dependedOn[dep] = true
		}
	}
	roots := make([]Handle, 0)
	for i := range g.defs {
		if !dependedOn[i] {
			roots = append(roots, Handle(i))
		}
	}
	return roots
}

// Dependents returns handles of steps that directly depend on h.
func (g *Graph) Dependents(h Handle) []Handle {
	dependents := make([]Handle, 0)
	for i, def := range g.defs {
		for _, dep := range def.DependsOn {
			if dep == h {
				dependents = append(dependents, Handle(i))
				break
			}
		}
	}
	return dependents
}

// ErrUnknownDependency is returned when a declaration requires an ID that is not in the graph.
var ErrUnknownDependency = errors.New("step requires a step that is not in the graph")

// Declaration is a Definition whose dependencies are named by ID.
// Providers declare steps this way because handles only exist once
// the graph is assembled.
type Declaration struct {
	ID          ID
	Name        string
	Description string
	Install     InstallFunc
	Check       Detector
	Requires    []ID
}

// Definition returns the declaration without its dependency list.
func (d Declaration) Definition() Definition {
	return Definition{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Install:     d.Install,
		Check:       d.Check,
	}
}

// Declare resolves the required IDs of d against steps already in the
// graph and adds it.
func (g *Graph) Declare(d Declaration) (Handle, error) {
	def := d.Definition()
	for _, req := range d.Requires {
		h, ok := g.Lookup(req)
		if !ok {
			return -1, fmt.Errorf("%w: %q requires %q", ErrUnknownDependency, d.ID, req)
		}
		def.DependsOn = append(def.DependsOn, h)
	}
	return g.Add(def)
}
