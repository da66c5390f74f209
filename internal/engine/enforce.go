package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls how duplicate object keys are handled while
// streaming.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// EnforceOptions bounds a token stream: nesting depth, consumed bytes, and
// duplicate-key policy. The sink, when set, receives non-fatal issues.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	IssueSink   func(SimpleIssue)
}

// WrapWithEnforcement wraps a TokenSource with the configured limits.
// Violations of MaxDepth and MaxBytes abort the stream; duplicate keys abort
// only under DupError.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.OnDuplicate == DupIgnore && opt.MaxDepth == 0 && opt.MaxBytes == 0 {
		return inner
	}
	return &enforcingSource{inner: inner, opt: opt}
}

type enforceFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

type enforcingSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []enforceFrame
}

func (e *enforcingSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.tokenPath(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		frame := enforceFrame{path: path}
		if tok.Kind == KindBeginObject {
			frame.object = true
			frame.expectingKey = true
			frame.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, frame)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fail("resource_limit", path, "max depth exceeded")
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.closeValue()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.object && top.expectingKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, dup := top.keys[tok.String]; dup {
						si := SimpleIssue{Code: "duplicate_key", Path: path, Message: "key " + strconv.Quote(tok.String) + " duplicated"}
						if e.opt.IssueSink != nil {
							e.opt.IssueSink(si)
						}
						if e.opt.OnDuplicate == DupError {
							return Token{}, IssueError{si}
						}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	default:
		e.closeValue()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.inner.Location(); off > e.opt.MaxBytes {
			return Token{}, e.fail("resource_limit", path, "max bytes exceeded")
		}
	}
	return tok, nil
}

func (e *enforcingSource) Location() int64 { return e.inner.Location() }

// closeValue flips the top object frame back to expecting a key after a
// complete value was consumed.
func (e *enforcingSource) closeValue() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingSource) fail(code, path, msg string) error {
	si := SimpleIssue{Code: code, Path: normalizePointer(path), Message: msg}
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

// tokenPath renders the JSON Pointer of the value the token belongs to.
func (e *enforcingSource) tokenPath(tok Token) string {
	if len(e.stack) == 0 {
		if tok.Kind == KindKey {
			return joinPointer("", tok.String)
		}
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinPointer(top.path, tok.String)
	case KindEndObject, KindEndArray:
		return top.path
	default:
		if !top.object {
			p := joinPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if top.pendingKey != "" {
			return joinPointer(top.path, top.pendingKey)
		}
		return top.path
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func normalizePointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
