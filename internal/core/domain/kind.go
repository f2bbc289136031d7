package domain

// Kind is the closed set of item kinds the name service attaches to
// completion objects. Values are the wire names.
type Kind string

const (
	KindCollection   Kind = "Collection"
	KindAuthorTopic  Kind = "AuthorTopic"
	KindTocCategory  Kind = "TocCategory"
	KindPersonTopic  Kind = "PersonTopic"
	KindTopic        Kind = "Topic"
	KindRef          Kind = "ref"
	KindSearch       Kind = "search"
	KindUser         Kind = "User"
	KindTermCategory Kind = "Term"
)

var kinds = map[string]Kind{
	string(KindCollection):   KindCollection,
	string(KindAuthorTopic):  KindAuthorTopic,
	string(KindTocCategory):  KindTocCategory,
	string(KindPersonTopic):  KindPersonTopic,
	string(KindTopic):        KindTopic,
	string(KindRef):          KindRef,
	string(KindSearch):       KindSearch,
	string(KindUser):         KindUser,
	string(KindTermCategory): KindTermCategory,
	"TermCategory":           KindTermCategory,
}

// ParseKind maps a wire name to a Kind. Unknown names report false.
func ParseKind(raw string) (Kind, bool) {
	k, ok := kinds[raw]
	return k, ok
}

// IsTopic reports whether items of this kind live under /topics.
func (k Kind) IsTopic() bool {
	switch k {
	case KindTopic, KindPersonTopic, KindAuthorTopic:
		return true
	default:
		return false
	}
}

// ResolutionKind classifies what a submitted query refers to.
type ResolutionKind string

const (
	ResolutionRef         ResolutionKind = "Ref"
	ResolutionTopic       ResolutionKind = "Topic"
	ResolutionPerson      ResolutionKind = "Person"
	ResolutionCollection  ResolutionKind = "Collection"
	ResolutionTocCategory ResolutionKind = "TocCategory"
	ResolutionSearch      ResolutionKind = "Search"
)

// objectResolutionKind maps the service "type" field to the kinds that are
// navigated to as object pages.
func objectResolutionKind(raw string) (ResolutionKind, bool) {
	switch raw {
	case string(ResolutionPerson):
		return ResolutionPerson, true
	case string(ResolutionCollection):
		return ResolutionCollection, true
	case string(ResolutionTocCategory):
		return ResolutionTocCategory, true
	default:
		return "", false
	}
}
