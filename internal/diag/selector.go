package diag

import "strings"

// Selector decides which codes are reported, flake8 style.
// The longest matching prefix wins; on equal length ignore wins.
// An empty Select list selects everything.
type Selector struct {
	Select []string
	Ignore []string
}

// NewSelector normalises prefixes (trimmed, upper-cased, empties dropped).
func NewSelector(sel, ignore []string) Selector {
	return Selector{Select: cleanPrefixes(sel), Ignore: cleanPrefixes(ignore)}
}

func cleanPrefixes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		for part := range strings.SplitSeq(p, ",") {
			part = strings.ToUpper(strings.TrimSpace(part))
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func longestPrefix(prefixes []string, id string) int {
	best := -1
	for _, p := range prefixes {
		if strings.HasPrefix(id, p) && len(p) > best {
			best = len(p)
		}
	}
	return best
}

// Allows reports whether diagnostics with code should be kept.
func (s Selector) Allows(code Code) bool {
	id := code.ID()
	sel := 0
	if len(s.Select) > 0 {
		sel = longestPrefix(s.Select, id)
		if sel < 0 {
			return false
		}
	}
	return longestPrefix(s.Ignore, id) < sel
}

// Keep adapts Allows for Bag.Filter.
func (s Selector) Keep(d Diagnostic) bool {
	return s.Allows(d.Code)
}
