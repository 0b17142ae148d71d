// Package cn merges Tailwind class-name fragments.
//
// Fragments are combined in order and later fragments win over earlier ones
// whenever two utility classes belong to the same Tailwind class group
// (for example "px-2" followed by "p-4" keeps only "p-4").
package cn

import (
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// Merge joins the given fragments into a single class string, dropping empty
// fragments and resolving utility conflicts with last-wins semantics. Each
// surviving class appears once, at the position of its last occurrence.
func Merge(fragments ...string) string {
	var tokens []string
	for _, f := range fragments {
		tokens = append(tokens, strings.Fields(f)...)
	}
	if len(tokens) == 0 {
		return ""
	}

	// twmerge decides which classes survive but not their order.
	kept := make(map[string]bool)
	for _, c := range strings.Fields(twmerge.Merge(strings.Join(tokens, " "))) {
		kept[c] = true
	}

	last := make(map[string]int, len(tokens))
	for i, c := range tokens {
		last[c] = i
	}

	out := make([]string, 0, len(kept))
	for i, c := range tokens {
		if kept[c] && last[c] == i {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

// If returns classes when cond is true and an empty fragment otherwise.
func If(cond bool, classes string) string {
	if cond {
		return classes
	}
	return ""
}
