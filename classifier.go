package adrules

import (
	"regexp"
	"strings"
)

// Classifier turns single lines of a source list into rules. It understands
// Adblock Plus network filters, hosts files, plain domain lists and regex filters.
// Lines that can't be classified with confidence are dropped.
type Classifier struct {
	policy    ClassificationPolicy
	validator DomainValidator
}

var hostsLine = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\s+`)

// Line prefixes that mark comments, exceptions and section headers.
var skipPrefixes = []string{"!", "#", "@@", "//", "["}

// Names found in nearly every hosts file that must not end up as block rules.
var localHostnames = map[string]struct{}{
	"localhost":             {},
	"localhost.localdomain": {},
	"local":                 {},
	"broadcasthost":         {},
	"0.0.0.0":               {},
}

// NewClassifier returns a classifier for the given policy. If validator is nil, the
// validator selected by the policy is used.
func NewClassifier(policy ClassificationPolicy, validator DomainValidator) (*Classifier, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if validator == nil {
		validator = policy.Validator()
	}
	return &Classifier{policy: policy, validator: validator}, nil
}

// Policy returns the classification policy.
func (c *Classifier) Policy() ClassificationPolicy {
	return c.policy
}

// Classify returns the rules encoded in one line. Most lines produce zero or one rule,
// hosts-file lines can list several names and produce one rule per name.
func (c *Classifier) Classify(line string) []ClassifiedRule {
	rule := strings.TrimSpace(line)
	if rule == "" || strings.Contains(rule, "##") {
		return nil
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(rule, prefix) {
			return nil
		}
	}

	// ||domain^ anchors at a domain boundary
	if strings.HasPrefix(rule, "||") && strings.HasSuffix(rule, "^") && len(rule) > 3 {
		if domain := rule[2 : len(rule)-1]; c.validator.Valid(domain) {
			return c.single(c.policy.BlockDirective, NormalizeDomain(domain))
		}
	}

	if c.validator.Valid(rule) {
		return c.single(c.policy.PlainDomain, NormalizeDomain(rule))
	}

	if hostsLine.MatchString(rule) {
		return c.hosts(rule)
	}

	// /regex/
	if c.policy.Regex && len(rule) > 2 && strings.HasPrefix(rule, "/") && strings.HasSuffix(rule, "/") {
		pattern := rule[1 : len(rule)-1]
		if _, err := regexp.Compile(pattern); err != nil {
			return nil
		}
		return c.single(Regex, pattern)
	}

	if strings.HasPrefix(rule, "*.") && c.validator.Valid(rule[2:]) {
		return c.single(Suffix, NormalizeDomain(rule[2:]))
	}

	// Shell-style wildcards like ad*.example.com
	if c.policy.Regex && strings.Contains(rule, "*") && strings.Contains(rule, ".") && !strings.ContainsAny(rule, "/:!#") {
		pattern := strings.ReplaceAll(rule, ".", `\.`)
		pattern = strings.ReplaceAll(pattern, "*", ".*")
		if _, err := regexp.Compile(pattern); err != nil {
			return nil
		}
		return c.single(Regex, pattern)
	}

	return nil
}

func (c *Classifier) single(kind RuleKind, value string) []ClassifiedRule {
	return []ClassifiedRule{{Kind: kind, Value: value}}
}

// hosts handles "<ipv4> name [name...]" lines.
func (c *Classifier) hosts(rule string) []ClassifiedRule {
	fields := strings.Fields(rule)
	var rules []ClassifiedRule
	for _, name := range fields[1:] {
		if strings.HasPrefix(name, "#") || strings.HasPrefix(name, "!") {
			continue
		}
		if !c.validator.Valid(name) {
			continue
		}
		name = NormalizeDomain(name)
		if c.policy.SkipLocalHostnames && isLocalHostname(name) {
			continue
		}
		rules = append(rules, ClassifiedRule{Kind: c.policy.PlainDomain, Value: name})
	}
	return rules
}

func isLocalHostname(name string) bool {
	if _, ok := localHostnames[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "ip6-")
}
