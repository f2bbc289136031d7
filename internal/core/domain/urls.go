package domain

import (
	"net/url"
	"strings"
)

const iconBase = "/static/icons/"

var kindIcons = map[Kind]string{
	KindCollection:   "collection.svg",
	KindAuthorTopic:  "iconmonstr-pen-17.svg",
	KindTocCategory:  "iconmonstr-view-6.svg",
	KindPersonTopic:  "iconmonstr-hashtag-1.svg",
	KindTopic:        "iconmonstr-hashtag-1.svg",
	KindRef:          "iconmonstr-book-15.svg",
	KindSearch:       "iconmonstr-magnifier-2.svg",
	KindTermCategory: "iconmonstr-script-2.svg",
	KindUser:         "iconmonstr-user-2%20%281%29.svg",
}

// ObjectURL returns the page path for an item of the given kind. Kinds
// without a page (search, terms) yield "".
func ObjectURL(kind Kind, key Key) string {
	switch kind {
	case KindCollection:
		return "/collections/" + key.String()
	case KindTocCategory:
		return "/texts/" + strings.Join(key.Segments(), "/")
	case KindTopic, KindPersonTopic, KindAuthorTopic:
		return "/topics/" + key.String()
	case KindRef:
		return "/" + strings.ReplaceAll(key.String(), " ", "_")
	case KindUser:
		return "/profile/" + key.String()
	case KindSearch, KindTermCategory:
		return ""
	}
	return ""
}

// ResolutionURL returns the page path for an object-kind resolution.
func ResolutionURL(kind ResolutionKind, key Key) string {
	switch kind {
	case ResolutionCollection:
		return ObjectURL(KindCollection, key)
	case ResolutionTocCategory:
		return ObjectURL(KindTocCategory, key)
	case ResolutionPerson, ResolutionTopic:
		return ObjectURL(KindTopic, key)
	case ResolutionRef:
		return ObjectURL(KindRef, key)
	case ResolutionSearch:
		return SearchURL(key.String())
	}
	return ""
}

// SearchURL is the full-page search results path for query.
func SearchURL(query string) string {
	return "/search?q=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

// IconFor resolves the dropdown icon of a suggestion. Users with a picture
// show the picture.
func IconFor(kind Kind, pic string) string {
	if kind == KindUser && pic != "" {
		return pic
	}
	return iconBase + kindIcons[kind]
}
