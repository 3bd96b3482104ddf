package sanitizer

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// SanitizeSlice applies strategy to each value and drops empties, keeping order.
func SanitizeSlice(values []string, strategy Strategy) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strategy(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// UniqueSlice is SanitizeSlice with duplicates removed.
func UniqueSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, s := range SanitizeSlice(values, strategy) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
