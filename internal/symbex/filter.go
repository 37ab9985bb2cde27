package symbex

import (
	"fmt"

	"github.com/gobwas/glob"

	"github.com/viperproject/viper-ide-sub004/internal/model"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// ChunkFilter selects heap chunks by resource name (field name, predicate
// name, or model.WandResource) using glob patterns.
type ChunkFilter struct {
	include []compiledPattern
	exclude []compiledPattern
}

// NewChunkFilter compiles the include and exclude patterns. An empty include
// list selects every resource.
func NewChunkFilter(include, exclude []string) (*ChunkFilter, error) {
	f := &ChunkFilter{}
	for _, pattern := range include {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		f.include = append(f.include, compiledPattern{pattern: pattern, glob: g})
	}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		f.exclude = append(f.exclude, compiledPattern{pattern: pattern, glob: g})
	}
	return f, nil
}

// Match reports whether the chunk's resource is selected.
func (f *ChunkFilter) Match(c model.HeapChunk) bool {
	name := c.Resource()
	for _, p := range f.exclude {
		if p.glob.Match(name) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, p := range f.include {
		if p.glob.Match(name) {
			return true
		}
	}
	return false
}

// Apply returns the selected chunks in their original order.
func (f *ChunkFilter) Apply(chunks []model.HeapChunk) []model.HeapChunk {
	out := make([]model.HeapChunk, 0, len(chunks))
	for _, c := range chunks {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// ApplyState returns a copy of s whose heaps only hold selected chunks.
func (f *ChunkFilter) ApplyState(s *State) *State {
	return &State{
		Store:          s.Store,
		Heap:           f.Apply(s.Heap),
		OldHeap:        f.Apply(s.OldHeap),
		PathConditions: s.PathConditions,
	}
}
