package fieldlens

import (
	"slices"
	"sync"
)

// Renderer projects a finished schema into an output artifact: a report, a
// validation schema, type declarations. Implementations live under target/
// and register themselves by name.
type Renderer interface {
	Render(s *Schema, cfg RenderConfig) ([]byte, error)
}

// RenderConfig carries the knobs shared by render targets. Targets ignore
// fields that do not apply to them.
type RenderConfig struct {
	// RootName names the top-level entity in targets that need one (type
	// declarations, schema titles). Empty means a target-chosen default.
	RootName string
	// Indent is the indentation unit for textual output. Empty means the
	// target's default.
	Indent string
}

var targets = struct {
	mu sync.RWMutex
	m  map[string]Renderer
}{m: map[string]Renderer{}}

// RegisterTarget binds a renderer to a target name, replacing any previous
// binding.
func RegisterTarget(name string, r Renderer) {
	targets.mu.Lock()
	defer targets.mu.Unlock()
	targets.m[name] = r
}

// TargetFor looks up a registered renderer by name.
func TargetFor(name string) (Renderer, bool) {
	targets.mu.RLock()
	defer targets.mu.RUnlock()
	r, ok := targets.m[name]
	return r, ok
}

// Targets lists the registered target names in sorted order.
func Targets() []string {
	targets.mu.RLock()
	defer targets.mu.RUnlock()
	out := make([]string, 0, len(targets.m))
	for name := range targets.m {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
