package adrules

import (
	"fmt"
	"strings"
)

// RuleKind is the type of match a classified rule performs.
type RuleKind int

const (
	// Exact matches one fully-qualified domain.
	Exact RuleKind = iota
	// Suffix matches a domain and all of its subdomains.
	Suffix
	// Regex matches any domain against a pattern.
	Regex
)

// Kinds lists all rule kinds in the order they appear in a ruleset document.
var Kinds = []RuleKind{Exact, Suffix, Regex}

// String returns the key used for the kind in the ruleset document.
func (k RuleKind) String() string {
	switch k {
	case Exact:
		return "domain"
	case Suffix:
		return "domain_suffix"
	case Regex:
		return "domain_regex"
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// ParseRuleKind reads a kind from configuration. Accepts the short names
// "exact", "suffix" and "regex" as well as the document keys.
func ParseRuleKind(s string) (RuleKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact", "domain":
		return Exact, nil
	case "suffix", "domain_suffix":
		return Suffix, nil
	case "regex", "domain_regex":
		return Regex, nil
	}
	return 0, fmt.Errorf("unsupported rule kind '%s'", s)
}

// ClassifiedRule is a single rule produced from a line of a source list.
type ClassifiedRule struct {
	Kind  RuleKind
	Value string
}

func (r ClassifiedRule) String() string {
	return r.Kind.String() + ":" + r.Value
}
