package usecase

import "github.com/kirillkom/library-searchbox/internal/core/domain"

// Grouper partitions suggestions by kind in first-seen order. With topic
// folding, Topic and PersonTopic items share the Topic group.
type Grouper struct {
	foldTopics bool
}

func NewGrouper(foldTopics bool) *Grouper {
	return &Grouper{foldTopics: foldTopics}
}

func (g *Grouper) Group(items []domain.Suggestion) []domain.SuggestionGroup {
	groups := make([]domain.SuggestionGroup, 0)
	index := make(map[domain.Kind]int)
	for _, item := range items {
		kind := g.groupKind(item.Kind)
		i, ok := index[kind]
		if !ok {
			i = len(groups)
			index[kind] = i
			groups = append(groups, domain.SuggestionGroup{Kind: kind})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func (g *Grouper) groupKind(kind domain.Kind) domain.Kind {
	if g.foldTopics && (kind == domain.KindTopic || kind == domain.KindPersonTopic) {
		return domain.KindTopic
	}
	return kind
}
