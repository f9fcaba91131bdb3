package importing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Matcher resolves free text against one reference collection.
type Matcher interface {
	Match(text string, coll Collection) (Entry, bool)
}

// ContainsMatcher accepts an entry whose code equals the input or whose name
// contains it, case-insensitively. The first such entry in collection order
// wins, so two similarly named entities can resolve to the wrong one.
type ContainsMatcher struct{}

func (ContainsMatcher) Match(text string, coll Collection) (Entry, bool) {
	key := Fold(text)
	if key == "" {
		return Entry{}, false
	}
	for _, entry := range coll {
		if entry.Code != "" && Fold(entry.Code) == key {
			return entry, true
		}
		if strings.Contains(Fold(entry.Name), key) {
			return entry, true
		}
	}
	return Entry{}, false
}

// ExactCodeMatcher only accepts a full code or full name match.
type ExactCodeMatcher struct{}

func (ExactCodeMatcher) Match(text string, coll Collection) (Entry, bool) {
	key := Fold(text)
	if key == "" {
		return Entry{}, false
	}
	for _, entry := range coll {
		if entry.Code != "" && Fold(entry.Code) == key {
			return entry, true
		}
	}
	for _, entry := range coll {
		if Fold(entry.Name) == key {
			return entry, true
		}
	}
	return Entry{}, false
}

// FuzzyMatcher ranks names by fuzzy distance after an exact code check.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Match(text string, coll Collection) (Entry, bool) {
	key := Fold(text)
	if key == "" {
		return Entry{}, false
	}
	names := make([]string, len(coll))
	for i, entry := range coll {
		if entry.Code != "" && Fold(entry.Code) == key {
			return entry, true
		}
		names[i] = Fold(entry.Name)
	}

	ranks := fuzzy.RankFindNormalizedFold(key, names)
	if len(ranks) == 0 {
		return Entry{}, false
	}
	sort.Stable(ranks)
	return coll[ranks[0].OriginalIndex], true
}

// NewMatcher returns the strategy registered under name.
func NewMatcher(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "contains":
		return ContainsMatcher{}, nil
	case "exact":
		return ExactCodeMatcher{}, nil
	case "fuzzy":
		return FuzzyMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q", name)
	}
}

// Lookup binds a session's reference snapshot to a matching strategy.
type Lookup struct {
	refs    *References
	matcher Matcher
}

func NewLookup(refs *References, matcher Matcher) *Lookup {
	if matcher == nil {
		matcher = ContainsMatcher{}
	}
	return &Lookup{refs: refs, matcher: matcher}
}

func (l *Lookup) Resolve(source Source, text string) (Entry, bool) {
	return l.matcher.Match(text, l.refs.Collection(source))
}
