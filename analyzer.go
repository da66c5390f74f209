package fieldlens

import (
	"fmt"
	"io"
	"sync"
)

// Analyzer owns one accumulating schema and makes the infer/merge/render
// cycle safe for concurrent use. The zero value is not usable; construct
// with NewAnalyzer.
type Analyzer struct {
	mu     sync.Mutex
	opt    Options
	schema *Schema
	issues Issues
}

// NewAnalyzer returns an analyzer with an empty schema. The options apply to
// every subsequent inference run; the configured IssueSink, if any, is
// called in addition to the analyzer's own issue log.
func NewAnalyzer(opt Options) *Analyzer {
	a := &Analyzer{schema: NewSchema()}
	userSink := opt.IssueSink
	opt.IssueSink = func(i Issue) {
		a.recordIssue(i)
		if userSink != nil {
			userSink(i)
		}
	}
	a.opt = opt
	return a
}

func (a *Analyzer) recordIssue(i Issue) {
	a.issues = append(a.issues, i)
}

// Infer folds one more input into the accumulated schema.
func (a *Analyzer) Infer(src Source) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return InferWith(a.schema, src, a.opt)
}

// InferReader is Infer for streaming input with an explicit format tag.
func (a *Analyzer) InferReader(f Format, r io.Reader) error {
	return a.Infer(NewSource(f, r))
}

// InferValue folds an already-decoded dynamic value into the schema.
func (a *Analyzer) InferValue(v any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return InferValue(a.schema, v, a.opt)
}

// Merge coalesces an independently built schema into the accumulated one.
// The argument is not mutated.
func (a *Analyzer) Merge(other *Schema) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.issues = AppendIssues(a.issues, a.schema.Coalesce(other))
}

// Schema returns a deep copy of the accumulated schema, safe to inspect or
// render while inference continues.
func (a *Analyzer) Schema() *Schema {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.schema.Clone()
}

// Issues returns the recoverable conditions logged so far.
func (a *Analyzer) Issues() Issues {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append(Issues(nil), a.issues...)
}

// Clear resets the accumulated schema and issue log, keeping the options.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.schema = NewSchema()
	a.issues = nil
}

// Render projects the accumulated schema through a registered target.
func (a *Analyzer) Render(target string, cfg RenderConfig) ([]byte, error) {
	r, ok := TargetFor(target)
	if !ok {
		return nil, fmt.Errorf("fieldlens: unknown render target %q", target)
	}
	return r.Render(a.Schema(), cfg)
}
