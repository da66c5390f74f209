package engine

// Kind enumerates the canonical decode events every format driver reduces to.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
	KindBytes
)

// Token is one canonical decode event. Numbers travel as raw text so the
// inference side decides integer vs. float without precision loss. Offset
// records the byte position in the input when the driver knows it (-1
// otherwise).
type Token struct {
	Kind   Kind
	String string // key and string tokens
	Number string // raw numeric text
	Bool   bool
	Bytes  []byte
	Offset int64
}

// TokenSource is the minimal event-stream interface consumed by the
// inference driver. Sources return io.EOF once the document is exhausted.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// SimpleIssue is the lightweight issue representation used below the public
// error model.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is an error carrying a SimpleIssue across the engine boundary.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }
