package domain

import "fmt"

// SearchOverrideValue is the combobox key of the synthetic "search for"
// suggestion.
const SearchOverrideValue = "SEARCH_OVERRIDE"

// Suggestion is one entry of the autocomplete dropdown.
type Suggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Kind  Kind   `json:"type"`
	URL   string `json:"url,omitempty"`
	Key   Key    `json:"key"`
	Pic   string `json:"pic,omitempty"`
	Icon  string `json:"icon"`
}

// NewSearchOverride builds the synthetic full-text search suggestion.
func NewSearchOverride(label string) Suggestion {
	return Suggestion{
		Value: SearchOverrideValue,
		Label: label,
		Kind:  KindSearch,
		Icon:  IconFor(KindSearch, ""),
	}
}

// NewSuggestion annotates a completion object of a known kind.
func NewSuggestion(obj CompletionObject, kind Kind) Suggestion {
	value := obj.Title
	if kind != KindRef {
		// kinds share titles; the combobox needs distinct values
		value = fmt.Sprintf("%s(%s)", obj.Title, obj.Type)
	}
	return Suggestion{
		Value: value,
		Label: obj.Title,
		Kind:  kind,
		URL:   ObjectURL(kind, obj.Key),
		Key:   obj.Key,
		Pic:   obj.Pic,
		Icon:  IconFor(kind, obj.Pic),
	}
}

// SuggestionGroup is a run of suggestions sharing a (folded) kind.
type SuggestionGroup struct {
	Kind  Kind         `json:"type"`
	Items []Suggestion `json:"items"`
}
