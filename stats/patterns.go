package stats

import "regexp"

// Pattern is a named detector applied to string samples. A node keeps a
// pattern only while every sample seen so far matches it.
type Pattern struct {
	Name string
	re   *regexp.Regexp
}

// MustPattern compiles a detector. The expression is anchored and tolerates
// surrounding whitespace, matching the behavior data-cleaning users expect
// from columns exported by spreadsheets.
func MustPattern(name, expr string) Pattern {
	return Pattern{Name: name, re: regexp.MustCompile(`^\s*(?:` + expr + `)\s*$`)}
}

// Match reports whether the sample satisfies the detector.
func (p Pattern) Match(s string) bool { return p.re.MatchString(s) }

var defaultPatterns = []Pattern{
	MustPattern("integer", `[-+]?\d+`),
	MustPattern("decimal", `[-+]?\d+[.,]\d+`),
	MustPattern("date-dmy", `\d{2}-\d{2}-\d{4}`),
	MustPattern("date-iso", `\d{4}-\d{2}-\d{2}`),
	MustPattern("boolean", `(?i:true|yes|false|no)`),
	MustPattern("uuid", `(?i:[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`),
	MustPattern("url", `https?://\S+`),
	MustPattern("email", `[^@\s]+@[^@\s]+\.[^@\s]+`),
}

// DefaultPatterns returns the built-in detector set. Callers may pass their
// own set through Options instead.
func DefaultPatterns() []Pattern {
	out := make([]Pattern, len(defaultPatterns))
	copy(out, defaultPatterns)
	return out
}

// matchingNames returns the names of the patterns satisfied by s, in the
// order the patterns were configured.
func matchingNames(s string, patterns []Pattern) []string {
	var names []string
	for _, p := range patterns {
		if p.Match(s) {
			names = append(names, p.Name)
		}
	}
	return names
}

func intersectNames(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	keep := make(map[string]struct{}, len(b))
	for _, n := range b {
		keep[n] = struct{}{}
	}
	var out []string
	for _, n := range a {
		if _, ok := keep[n]; ok {
			out = append(out, n)
		}
	}
	return out
}
