package ffmpeg

import (
	"strings"

	"github.com/samber/lo"
)

// Rule maps a stderr trigger phrase to a warning message. Triggers match
// case-insensitively as substrings.
type Rule struct {
	Trigger string
	Message string
}

// DefaultRules is the diagnostics table, checked in order.
var DefaultRules = []Rule{
	{"drop", "Frame drop detected"},
	{"could not open", "Missing or unreadable frame detected"},
	{"buffer underflow", "Buffer underrun detected"},
	{"deprecated", "Deprecated option used"},
	{"frame rate very high", "Frame rate very high for the output format"},
	{"invalid", "Invalid frame data detected"},
	{"no such file or directory", "Input file not found"},
	{"unrecognized option", "Unrecognized ffmpeg option"},
	{"error", "FFmpeg reported an error"},
	{"warning", "FFmpeg reported a warning"},
	{"past duration", "Past frame duration too large (possible timestamp drift)"},
}

// Scanner classifies encoder stderr against a rule table.
type Scanner struct {
	rules []Rule
}

// NewScanner returns a scanner using DefaultRules followed by extra.
func NewScanner(extra ...Rule) *Scanner {
	rules := make([]Rule, 0, len(DefaultRules)+len(extra))
	for _, r := range append(append([]Rule{}, DefaultRules...), extra...) {
		rules = append(rules, Rule{Trigger: strings.ToLower(r.Trigger), Message: r.Message})
	}
	return &Scanner{rules: rules}
}

// Scan returns the message of every rule whose trigger appears in any of
// the given texts, in table order. Each rule contributes at most once.
func (s *Scanner) Scan(stderr ...string) []string {
	lower := strings.ToLower(strings.Join(stderr, "\n"))
	hits := lo.Filter(s.rules, func(r Rule, _ int) bool {
		return r.Trigger != "" && strings.Contains(lower, r.Trigger)
	})
	return lo.Map(hits, func(r Rule, _ int) string { return r.Message })
}

// ScanStderr classifies stderr with the default table.
func ScanStderr(stderr string) []string {
	return NewScanner().Scan(stderr)
}
