package progress

import (
	"math"
	"strconv"
	"strings"
)

// MaxRangeSpan is the largest number of names a single range may expand to.
// Wider ranges are emitted unchanged, like malformed ones.
const MaxRangeSpan = 1000

// ExpandRange expands compact range notation. A name whose last token is
// "<low>-<high>" with integer bounds becomes "<head> <low>" .. "<head> <high>";
// any other name is emitted unchanged. Input order is preserved.
func ExpandRange(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, expandOne(name)...)
	}
	return out
}

func expandOne(name string) []string {
	trimmed := strings.TrimSpace(name)
	idx := strings.LastIndex(trimmed, " ")
	if idx < 0 {
		return []string{name}
	}
	head, token := strings.TrimSpace(trimmed[:idx]), trimmed[idx+1:]
	lowText, highText, ok := strings.Cut(token, "-")
	if !ok || head == "" {
		return []string{name}
	}
	low, errLow := strconv.Atoi(lowText)
	high, errHigh := strconv.Atoi(highText)
	if errLow != nil || errHigh != nil || low < 0 {
		return []string{name}
	}
	if high < low {
		return []string{}
	}
	span := high - low
	if span >= MaxRangeSpan {
		return []string{name}
	}

	expanded := make([]string, 0, span+1)
	for n := 0; n <= span; n++ {
		expanded = append(expanded, head+" "+strconv.Itoa(low+n))
	}
	return expanded
}

// SeriesKeys builds the setting keys "<base> <suffix>" for each suffix, in order
func SeriesKeys(base string, suffixes []int) []string {
	keys := make([]string, len(suffixes))
	for i, s := range suffixes {
		keys[i] = base + " " + strconv.Itoa(s)
	}
	return keys
}

// Aliases maps historically inconsistent entity names to their canonical form.
// Lookup is case-insensitive on trimmed input.
type Aliases map[string]string

// NewAliases builds an alias table from synonym -> canonical pairs
func NewAliases(pairs map[string]string) Aliases {
	a := make(Aliases, len(pairs))
	for from, to := range pairs {
		a[normalizeAlias(from)] = to
	}
	return a
}

// Resolve returns the canonical name, or the trimmed input when no alias matches
func (a Aliases) Resolve(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := a[normalizeAlias(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

func normalizeAlias(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseLevel reads a stored level. Absent or non-numeric values are 0,
// a decimal string truncates toward zero.
func ParseLevel(value *string) int {
	if value == nil {
		return 0
	}
	s := strings.TrimSpace(*value)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// Max returns the largest level, 0 for an empty list
func Max(levels []int) int {
	if len(levels) == 0 {
		return 0
	}
	m := levels[0]
	for _, l := range levels[1:] {
		m = max(m, l)
	}
	return m
}

// Sum returns the total of the levels
func Sum(levels []int) int {
	total := 0
	for _, l := range levels {
		total += l
	}
	return total
}
