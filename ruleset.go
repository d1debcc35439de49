package adrules

import (
	"sort"
)

// RuleSet collects classified rules and deduplicates them by kind and value.
// Values are kept unordered while collecting and sorted when read.
type RuleSet struct {
	sets map[RuleKind]map[string]struct{}
}

// NewRuleSet returns an empty RuleSet.
func NewRuleSet() *RuleSet {
	s := &RuleSet{sets: make(map[RuleKind]map[string]struct{})}
	for _, kind := range Kinds {
		s.sets[kind] = make(map[string]struct{})
	}
	return s
}

// Add stores rules in the set. Rules of unknown kind are ignored.
func (s *RuleSet) Add(rules ...ClassifiedRule) {
	for _, r := range rules {
		set, ok := s.sets[r.Kind]
		if !ok {
			continue
		}
		set[r.Value] = struct{}{}
	}
}

// Contains returns true if the rule is in the set.
func (s *RuleSet) Contains(r ClassifiedRule) bool {
	_, ok := s.sets[r.Kind][r.Value]
	return ok
}

// Values returns the lexicographically sorted values of one kind.
func (s *RuleSet) Values(kind RuleKind) []string {
	set := s.sets[kind]
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Exact returns the sorted exact-match domains.
func (s *RuleSet) Exact() []string { return s.Values(Exact) }

// Suffix returns the sorted domain suffixes.
func (s *RuleSet) Suffix() []string { return s.Values(Suffix) }

// Regex returns the sorted domain regexes.
func (s *RuleSet) Regex() []string { return s.Values(Regex) }

// Count returns the number of rules of one kind.
func (s *RuleSet) Count(kind RuleKind) int {
	return len(s.sets[kind])
}

// Counts returns the number of rules per kind.
func (s *RuleSet) Counts() map[RuleKind]int {
	counts := make(map[RuleKind]int, len(Kinds))
	for _, kind := range Kinds {
		counts[kind] = len(s.sets[kind])
	}
	return counts
}

// Len returns the total number of rules.
func (s *RuleSet) Len() int {
	var n int
	for _, set := range s.sets {
		n += len(set)
	}
	return n
}

// PruneSubdomains removes rules that are already matched by a suffix rule: suffix
// rules below another suffix rule, and exact rules equal to or below a suffix rule.
// Returns the number of removed rules.
func (s *RuleSet) PruneSubdomains() int {
	suffixes := s.sets[Suffix]
	trie := newDomainTrie()
	for name := range suffixes {
		trie.add(name)
	}
	var removed int
	for name := range suffixes {
		if trie.covers(name, false) {
			delete(suffixes, name)
			removed++
		}
	}
	exact := s.sets[Exact]
	for name := range exact {
		if trie.covers(name, true) {
			delete(exact, name)
			removed++
		}
	}
	return removed
}
