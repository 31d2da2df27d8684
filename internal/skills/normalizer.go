// Package skills maps free-text skill tokens to canonical forms and builds
// ranked provider search queries.
package skills

import "strings"

// aliases maps common shorthand to the canonical skill name. Canonical
// names never appear as keys, so Normalize is idempotent.
var aliases = map[string]string{
	"js":         "javascript",
	"ts":         "typescript",
	"py":         "python",
	"node":       "nodejs",
	"node.js":    "nodejs",
	"react.js":   "react",
	"reactjs":    "react",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"golang":     "go",
	"k8s":        "kubernetes",
	"postgres":   "postgresql",
	"psql":       "postgresql",
	"mongo":      "mongodb",
	"dotnet":     ".net",
	"ml":         "machine learning",
	"ai":         "artificial intelligence",
	"gcp":        "google cloud",
	"tf":         "terraform",
	"es":         "elasticsearch",
	"ci/cd":      "cicd",
	"springboot": "spring boot",
}

// highValue lists skills that front providers search best on, in priority
// order. Queries for these are emitted before anything else.
var highValue = []string{
	"javascript",
	"typescript",
	"python",
	"java",
	"go",
	"react",
	"nodejs",
	"aws",
	"kubernetes",
	"rust",
}

// Normalize lowercases, trims and canonicalizes raw skill tokens, dropping
// empties and duplicates. Output order follows first appearance.
func Normalize(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))

	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if canonical, ok := aliases[s]; ok {
			s = canonical
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// BuildQueries turns normalized skills into at most maxQueries provider
// queries. High-value skills go first, the rest keep their input order.
// If room remains and at least two skills exist, one two-skill combination
// query is appended to catch listings that mention a stack rather than a
// single technology.
func BuildQueries(normalized []string, maxQueries int) []string {
	if len(normalized) == 0 || maxQueries <= 0 {
		return nil
	}

	inSet := make(map[string]bool, len(normalized))
	for _, s := range normalized {
		inSet[s] = true
	}

	prioritized := make([]string, 0, len(normalized))
	taken := make(map[string]bool, len(normalized))
	for _, hv := range highValue {
		if inSet[hv] {
			prioritized = append(prioritized, hv)
			taken[hv] = true
		}
	}
	for _, s := range normalized {
		if !taken[s] {
			prioritized = append(prioritized, s)
		}
	}

	queries := make([]string, 0, maxQueries)
	for _, s := range prioritized {
		if len(queries) >= maxQueries {
			break
		}
		queries = append(queries, s)
	}

	if len(queries) < maxQueries && len(prioritized) >= 2 {
		queries = append(queries, prioritized[0]+" "+prioritized[1])
	}

	return queries
}
