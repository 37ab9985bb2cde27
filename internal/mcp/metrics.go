package mcp

import (
	"sort"
	"sync"
	"time"
)

// ToolMetrics tracks per-tool call statistics for the MCP server.
// All methods are thread-safe and can be called concurrently.
type ToolMetrics struct {
	tools map[string]*toolCounters
	mu    sync.RWMutex
}

type toolCounters struct {
	calls         int64
	failures      int64
	totalDuration time.Duration
	lastError     string
}

// ToolSnapshot is an immutable snapshot of one tool's metrics.
type ToolSnapshot struct {
	Tool          string        `json:"tool"`
	Calls         int64         `json:"calls"`
	Failures      int64         `json:"failures"`
	TotalDuration time.Duration `json:"total_duration_ns"`
	LastError     string        `json:"last_error,omitempty"`
}

// NewToolMetrics creates a new ToolMetrics instance with zero values.
func NewToolMetrics() *ToolMetrics {
	return &ToolMetrics{tools: make(map[string]*toolCounters)}
}

// Record records the outcome of one tool call. A nil err counts as success.
func (m *ToolMetrics) Record(tool string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.tools[tool]
	if !ok {
		c = &toolCounters{}
		m.tools[tool] = c
	}
	c.calls++
	c.totalDuration += duration
	if err != nil {
		c.failures++
		c.lastError = err.Error()
	}
}

// Snapshot returns the metrics of every tool called so far, sorted by name.
func (m *ToolMetrics) Snapshot() []ToolSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ToolSnapshot, 0, len(m.tools))
	for name, c := range m.tools {
		out = append(out, ToolSnapshot{
			Tool:          name,
			Calls:         c.calls,
			Failures:      c.failures,
			TotalDuration: c.totalDuration,
			LastError:     c.lastError,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tool < out[j].Tool })
	return out
}
