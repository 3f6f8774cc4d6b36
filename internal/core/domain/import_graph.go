package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// StagedWrite is an output file waiting for the resolve walk to finish.
type StagedWrite struct {
	Path    string
	Content string
}

// ImportGraph tracks the state of a single resolve walk.
// It is created per top-level resolve call and discarded afterwards.
type ImportGraph struct {
	static   map[InternedString]string
	dynamic  map[InternedString]string
	visiting map[InternedString]bool
	stack    []InternedString
	writes   []StagedWrite
}

// NewImportGraph creates an empty ImportGraph.
func NewImportGraph() *ImportGraph {
	return &ImportGraph{
		static:   make(map[InternedString]string),
		dynamic:  make(map[InternedString]string),
		visiting: make(map[InternedString]bool),
	}
}

// Enter pushes a source file onto the resolving stack.
// It fails with ErrImportCycle if the file is already being resolved.
func (g *ImportGraph) Enter(path string) error {
	p := NewInternedString(path)
	if g.visiting[p] {
		return g.buildCycleError(p)
	}
	g.visiting[p] = true
	g.stack = append(g.stack, p)
	return nil
}

// Leave pops a source file off the resolving stack and records its output path.
func (g *ImportGraph) Leave(path, output string) {
	p := NewInternedString(path)
	delete(g.visiting, p)
	if n := len(g.stack); n > 0 && g.stack[n-1] == p {
		g.stack = g.stack[:n-1]
	}
	g.static[p] = output
}

// Resolved returns the output path of a fully resolved static import.
func (g *ImportGraph) Resolved(path string) (string, bool) {
	out, ok := g.static[NewInternedString(path)]
	return out, ok
}

// Dynamic returns the keyed output path of a materialized dynamic import.
func (g *ImportGraph) Dynamic(output string) (string, bool) {
	out, ok := g.dynamic[NewInternedString(output)]
	return out, ok
}

// MarkDynamic records the keyed output path for a dynamic import.
func (g *ImportGraph) MarkDynamic(output, keyed string) {
	g.dynamic[NewInternedString(output)] = keyed
}

// StaticCount returns the number of fully resolved static files.
func (g *ImportGraph) StaticCount() int {
	return len(g.static)
}

// DynamicCount returns the number of materialized dynamic imports.
func (g *ImportGraph) DynamicCount() int {
	return len(g.dynamic)
}

// Stage queues content for an output path.
func (g *ImportGraph) Stage(path, content string) {
	g.writes = append(g.writes, StagedWrite{Path: path, Content: content})
}

// Writes returns the staged writes in the order they were queued.
func (g *ImportGraph) Writes() []StagedWrite {
	return g.writes
}

// buildCycleError constructs an error with cycle path metadata.
func (g *ImportGraph) buildCycleError(dep InternedString) error {
	start := 0
	for i, node := range g.stack {
		if node == dep {
			start = i
			break
		}
	}

	parts := make([]string, 0, len(g.stack)-start+1)
	for _, node := range g.stack[start:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrImportCycle, "cycle", strings.Join(parts, " -> "))
}
