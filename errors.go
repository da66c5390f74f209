package fieldlens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fieldlens/fieldlens/internal/engine"
)

// Issue codes. Stable string identifiers, never localized.
const (
	CodeDecodeError        = "decode_error"
	CodeAggregatorMismatch = "aggregator_mismatch"
	CodeUnsupportedShape   = "unsupported_shape"
	CodeResourceLimit      = "resource_limit"
	CodeDuplicateKey       = "duplicate_key"
	CodeUnknownFormat      = "unknown_format"
)

// Issue is a single reportable condition, located by a JSON Pointer into the
// document (or schema, for merge-time issues).
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (i Issue) Error() string {
	if i.Path == "" || i.Path == "/" {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s at %s: %s", i.Code, i.Path, i.Message)
}

func (i Issue) Unwrap() error { return i.Cause }

// Issues aggregates multiple issues into one error value.
type Issues []Issue

func (is Issues) Error() string {
	if len(is) == 0 {
		return "no issues"
	}
	parts := make([]string, len(is))
	for n, i := range is {
		parts[n] = i.Error()
	}
	return strings.Join(parts, "; ")
}

// AsIssues extracts structured issues from an error. Any other error becomes
// a single decode_error issue.
func AsIssues(err error) Issues {
	if err == nil {
		return nil
	}
	var is Issues
	if errors.As(err, &is) {
		return is
	}
	var one Issue
	if errors.As(err, &one) {
		return Issues{one}
	}
	var ie engine.IssueError
	if errors.As(err, &ie) {
		return Issues{issueFromEngine(ie.SimpleIssue, err)}
	}
	return Issues{{Path: "/", Code: CodeDecodeError, Message: err.Error(), Cause: err}}
}

// AppendIssues merges error values, flattening nested Issues slices.
func AppendIssues(dst Issues, errs ...error) Issues {
	for _, err := range errs {
		if err == nil {
			continue
		}
		dst = append(dst, AsIssues(err)...)
	}
	return dst
}

func issueFromEngine(si engine.SimpleIssue, cause error) Issue {
	return Issue{Path: si.Path, Code: si.Code, Message: si.Message, Cause: cause}
}
