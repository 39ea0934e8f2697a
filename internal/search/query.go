package search

import (
	"strings"
	"unicode"
)

const maxVariants = 8

var Synonyms = map[string][]string{
	"intern":     {"internship", "magang"},
	"internship": {"intern", "magang"},
	"magang":     {"internship", "intern"},
	"frontend":   {"front end", "ui developer"},
	"backend":    {"back end", "server developer"},
	"fullstack":  {"full stack"},
	"designer":   {"ui designer", "graphic designer"},
	"data":       {"analytics"},
	"devops":     {"site reliability", "infrastructure"},
}

type Query struct {
	Original   string
	Normalized string
	Variants   []string
}

// Normalize lowercases the input, keeps letters, digits and single spaces.
// Other runes are dropped.
func Normalize(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Expand returns the normalized query first, then synonym variants for the
// whole query and for its leading word.
func Expand(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return nil
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(out) >= maxVariants {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range Synonyms[normalized] {
		add(syn)
	}

	words := strings.Fields(normalized)
	if len(words) > 1 {
		rest := strings.Join(words[1:], " ")
		for _, syn := range Synonyms[words[0]] {
			add(syn + " " + rest)
		}
	}

	// "front end" and "frontend" should reach each other.
	if compact := strings.ReplaceAll(normalized, " ", ""); compact != normalized {
		if _, ok := Synonyms[compact]; ok {
			add(compact)
		}
	}
	return out
}

func Process(input string) Query {
	q := Query{Original: input, Normalized: Normalize(input)}
	q.Variants = Expand(q.Normalized)
	return q
}
