// Package normalization owns the single case-folding rule applied to concept
// names at every boundary. Concepts are compared and stored on the normalized
// form only; canonical display casing is carried separately.
package normalization

import (
	"strings"
)

func ConceptName(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func ConceptNames(inputs []string) []string {
	if len(inputs) == 0 {
		return nil
	}
	out := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		n := ConceptName(in)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
