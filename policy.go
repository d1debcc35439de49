package adrules

import (
	"fmt"
	"strings"
)

// ValidationMode selects the domain validator used by a classifier.
type ValidationMode int

const (
	// Strict validation supports internationalized domain names.
	Strict ValidationMode = iota
	// Loose validation is ASCII-only and requires a letters-only TLD.
	Loose
)

func (m ValidationMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Loose:
		return "loose"
	}
	return fmt.Sprintf("ValidationMode(%d)", int(m))
}

// ParseValidationMode reads a validation mode from configuration.
func ParseValidationMode(s string) (ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "idn":
		return Strict, nil
	case "loose", "ascii":
		return Loose, nil
	}
	return 0, fmt.Errorf("unsupported validation mode '%s'", s)
}

// ClassificationPolicy controls the choices a Classifier makes where list
// dialects disagree. A single policy must be used for a whole run, mixing them
// produces an inconsistent ruleset.
type ClassificationPolicy struct {
	// Kind emitted for Adblock "||domain^" rules. Exact or Suffix.
	BlockDirective RuleKind

	// Kind emitted for bare domain lines and hosts-file entries. Exact or Suffix.
	PlainDomain RuleKind

	// Enables "/regex/" rules and the wildcard-to-regex fallback.
	Regex bool

	// Domain validation rules.
	Validation ValidationMode

	// Drop hosts-file boilerplate like "127.0.0.1 localhost". Off by default.
	SkipLocalHostnames bool
}

// DefaultPolicy treats ||domain^ and plain domains as suffix matches, supports
// regex rules and validates internationalized names.
func DefaultPolicy() ClassificationPolicy {
	return ClassificationPolicy{
		BlockDirective:     Suffix,
		PlainDomain:        Suffix,
		Regex:              true,
		Validation:         Strict,
		SkipLocalHostnames: false,
	}
}

// Validate checks that the policy only uses domain kinds where domains are expected.
func (p ClassificationPolicy) Validate() error {
	if p.BlockDirective == Regex {
		return fmt.Errorf("block directives can not be classified as %s", p.BlockDirective)
	}
	if p.PlainDomain == Regex {
		return fmt.Errorf("plain domains can not be classified as %s", p.PlainDomain)
	}
	if p.Validation != Strict && p.Validation != Loose {
		return fmt.Errorf("unsupported validation mode %s", p.Validation)
	}
	return nil
}

// Validator returns the domain validator for the policy.
func (p ClassificationPolicy) Validator() DomainValidator {
	if p.Validation == Loose {
		return LooseValidator{}
	}
	return NewStrictValidator()
}
