package fieldlens

import (
	"bytes"
	"io"
	"slices"
	"sync"

	"github.com/fieldlens/fieldlens/internal/engine"
	sourcecbor "github.com/fieldlens/fieldlens/source/cbor"
	sourcejson "github.com/fieldlens/fieldlens/source/json"
	sourcetoml "github.com/fieldlens/fieldlens/source/toml"
	sourcexml "github.com/fieldlens/fieldlens/source/xml"
	sourceyaml "github.com/fieldlens/fieldlens/source/yaml"
)

// Driver turns raw input in one serialization format into the canonical
// token stream the inference engine consumes. Implementations live under
// source/; alternative drivers for a registered format (source/gojson,
// source/fastjson) can replace the default via RegisterFormat.
type Driver interface {
	Open(r io.Reader) (engine.TokenSource, error)
}

// DriverFunc adapts a plain function to the Driver interface.
type DriverFunc func(r io.Reader) (engine.TokenSource, error)

func (f DriverFunc) Open(r io.Reader) (engine.TokenSource, error) { return f(r) }

var registry = struct {
	mu      sync.RWMutex
	drivers map[Format]Driver
}{drivers: map[Format]Driver{}}

// RegisterFormat binds a driver to a format tag, replacing any previous
// binding. Safe for concurrent use.
func RegisterFormat(f Format, d Driver) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.drivers[f] = d
}

// DriverFor looks up the driver currently bound to a format tag.
func DriverFor(f Format) (Driver, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	d, ok := registry.drivers[f]
	return d, ok
}

// Formats lists the registered format tags in sorted order.
func Formats() []Format {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	out := make([]Format, 0, len(registry.drivers))
	for f := range registry.drivers {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func init() {
	RegisterFormat(FormatJSON, DriverFunc(sourcejson.Open))
	RegisterFormat(FormatYAML, DriverFunc(sourceyaml.Open))
	RegisterFormat(FormatTOML, DriverFunc(sourcetoml.Open))
	RegisterFormat(FormatCBOR, DriverFunc(sourcecbor.Open))
	RegisterFormat(FormatXML, DriverFunc(sourcexml.Open))
}

// Source pairs an input with the format tag used to resolve its driver.
type Source struct {
	format Format
	reader io.Reader
}

// NewSource wraps a reader with an explicit format tag.
func NewSource(f Format, r io.Reader) Source { return Source{format: f, reader: r} }

// BytesSource wraps an in-memory document with an explicit format tag.
func BytesSource(f Format, data []byte) Source { return NewSource(f, bytes.NewReader(data)) }

// JSONBytes wraps an in-memory JSON document.
func JSONBytes(data []byte) Source { return BytesSource(FormatJSON, data) }

// JSONReader wraps streaming JSON input.
func JSONReader(r io.Reader) Source { return NewSource(FormatJSON, r) }

// YAMLBytes wraps an in-memory YAML document.
func YAMLBytes(data []byte) Source { return BytesSource(FormatYAML, data) }

// TOMLBytes wraps an in-memory TOML document.
func TOMLBytes(data []byte) Source { return BytesSource(FormatTOML, data) }

// CBORBytes wraps an in-memory CBOR document.
func CBORBytes(data []byte) Source { return BytesSource(FormatCBOR, data) }

// XMLBytes wraps an in-memory XML document.
func XMLBytes(data []byte) Source { return BytesSource(FormatXML, data) }

// Format returns the source's format tag.
func (s Source) Format() Format { return s.format }

// open resolves the driver and stacks the configured stream enforcement on
// top of it.
func (s Source) open(opt Options) (engine.TokenSource, error) {
	d, ok := DriverFor(s.format)
	if !ok {
		return nil, Issue{Path: "/", Code: CodeUnknownFormat, Message: "no driver registered for format " + string(s.format)}
	}
	ts, err := d.Open(s.reader)
	if err != nil {
		return nil, Issue{Path: "/", Code: CodeDecodeError, Message: err.Error(), Cause: err}
	}
	eo := engine.EnforceOptions{
		MaxDepth: opt.MaxDepth,
		MaxBytes: opt.MaxBytes,
	}
	switch opt.OnDuplicateKey {
	case Warn:
		eo.OnDuplicate = engine.DupWarn
	case Error:
		eo.OnDuplicate = engine.DupError
	}
	if opt.IssueSink != nil {
		eo.IssueSink = func(si engine.SimpleIssue) { opt.sink(issueFromEngine(si, nil)) }
	}
	return engine.WrapWithEnforcement(ts, eo), nil
}
