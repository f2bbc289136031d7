package domain

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const gershayim = "״"

// CompletionObject is a raw autocomplete candidate as the name service
// returns it, before client-side annotation.
type CompletionObject struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Key   Key    `json:"key"`
	Pic   string `json:"pic,omitempty"`
}

// NameResult is the name service answer for one query string.
type NameResult struct {
	IsRef             bool               `json:"is_ref"`
	Ref               string             `json:"ref,omitempty"`
	IsBook            bool               `json:"is_book"`
	TopicSlug         string             `json:"topic_slug,omitempty"`
	Type              string             `json:"type,omitempty"`
	Key               Key                `json:"key"`
	Completions       []string           `json:"completions,omitempty"`
	CompletionObjects []CompletionObject `json:"completion_objects"`
	CaseVariant       string             `json:"case_variant,omitempty"`
	GershayimVariant  string             `json:"gershayim_variant,omitempty"`
}

// RepairCaseVariant returns the query with its leading part replaced by the
// first completion when the two differ only in case. The query is returned
// unchanged when no repair applies.
func (r NameResult) RepairCaseVariant(query string) string {
	if r.CaseVariant != "" {
		return r.CaseVariant
	}
	if r.IsRef || len(r.Completions) == 0 {
		return query
	}
	first := r.Completions[0]
	if first == query {
		return query
	}
	prefix, rest, ok := splitAtRune(query, utf8.RuneCountInString(first))
	if !ok || prefix == first {
		return query
	}
	fold := cases.Fold()
	if fold.String(normalizeGershayim(first)) != fold.String(normalizeGershayim(prefix)) {
		return query
	}
	return first + rest
}

// RepairGershayimVariant returns the completion that matches the query once
// gershayim and plain double quotes are treated as the same character.
func (r NameResult) RepairGershayimVariant(query string) string {
	if r.GershayimVariant != "" {
		return r.GershayimVariant
	}
	if r.IsRef || slices.Contains(r.Completions, query) {
		return query
	}
	normalized := normalizeGershayim(query)
	for _, c := range r.Completions {
		if normalizeGershayim(c) == normalized {
			return c
		}
	}
	return query
}

// Classify decides what query refers to given this response.
func (r NameResult) Classify(query string) QueryResolution {
	if r.IsRef {
		return QueryResolution{Kind: ResolutionRef, ID: ScalarKey(r.Ref), IsBook: r.IsBook}
	}
	if r.TopicSlug != "" {
		return QueryResolution{Kind: ResolutionTopic, ID: ScalarKey(r.TopicSlug), IsBook: r.IsBook}
	}
	if kind, ok := objectResolutionKind(r.Type); ok {
		return QueryResolution{Kind: kind, ID: r.Key, IsBook: r.IsBook}
	}
	return QueryResolution{Kind: ResolutionSearch, ID: ScalarKey(query), IsBook: r.IsBook}
}

// QueryResolution is the classification of one submitted query.
type QueryResolution struct {
	Kind   ResolutionKind `json:"type"`
	ID     Key            `json:"id"`
	IsBook bool           `json:"is_book"`
}

// normalizeGershayim swaps the first gershayim only.
func normalizeGershayim(s string) string {
	return strings.Replace(s, gershayim, `"`, 1)
}

func splitAtRune(s string, n int) (string, string, bool) {
	if n <= 0 {
		return "", s, true
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], s[i:], true
		}
		count++
	}
	if count == n {
		return s, "", true
	}
	return "", "", false
}
