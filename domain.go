package adrules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

const maxDomainLength = 253

// DomainValidator decides whether a token is a usable domain name.
type DomainValidator interface {
	Valid(token string) bool
}

var (
	// One or more LDH labels of 1-63 characters, without leading or trailing hyphens.
	strictDomainPattern = regexp.MustCompile(`^([a-z0-9]|[a-z0-9][a-z0-9\-]{0,61}[a-z0-9])(\.([a-z0-9]|[a-z0-9][a-z0-9\-]{0,61}[a-z0-9]))*$`)

	looseLabelPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)
	looseTLDPattern   = regexp.MustCompile(`^[a-zA-Z]{2,63}$`)
)

// StrictValidator accepts internationalized domain names. The token is converted
// to its ASCII-compatible encoding first, and the encoded form has to consist of
// valid LDH labels. Single-label names are accepted.
type StrictValidator struct {
	profile *idna.Profile
}

var _ DomainValidator = &StrictValidator{}

// NewStrictValidator returns a validator using the IDNA lookup profile (UTS-46
// mapping with STD3 rules).
func NewStrictValidator() *StrictValidator {
	return &StrictValidator{profile: idna.Lookup}
}

func (v *StrictValidator) Valid(token string) bool {
	if n := utf8.RuneCountInString(token); n == 0 || n > maxDomainLength {
		return false
	}
	if strings.HasPrefix(token, ".") || strings.HasSuffix(token, ".") {
		return false
	}
	ascii, err := v.profile.ToASCII(token)
	if err != nil {
		return false
	}
	if _, ok := dns.IsDomainName(ascii); !ok {
		return false
	}
	return strictDomainPattern.MatchString(ascii)
}

// LooseValidator is an ASCII-only check. It requires at least two labels and a
// final label made of letters only, so it rejects IP addresses, single-label names
// and IDN top-level domains.
type LooseValidator struct{}

var _ DomainValidator = LooseValidator{}

func (LooseValidator) Valid(token string) bool {
	if token == "" || len(token) > maxDomainLength {
		return false
	}
	if strings.HasPrefix(token, ".") || strings.HasSuffix(token, ".") {
		return false
	}
	if _, ok := dns.IsDomainName(token); !ok {
		return false
	}
	labels := dns.SplitDomainName(token)
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels[:len(labels)-1] {
		if !looseLabelPattern.MatchString(label) {
			return false
		}
	}
	return looseTLDPattern.MatchString(labels[len(labels)-1])
}

// CachedValidator remembers the verdicts of another validator. The same names show
// up in many lists, and IDN conversion is comparatively expensive.
type CachedValidator struct {
	validator DomainValidator
	cache     *lru.Cache[string, bool]
}

var _ DomainValidator = &CachedValidator{}

// NewCachedValidator wraps v with an LRU cache holding up to size verdicts.
func NewCachedValidator(v DomainValidator, size int) (*CachedValidator, error) {
	cache, err := lru.New[string, bool](size)
	if err != nil {
		return nil, err
	}
	return &CachedValidator{validator: v, cache: cache}, nil
}

func (c *CachedValidator) Valid(token string) bool {
	if ok, found := c.cache.Get(token); found {
		return ok
	}
	ok := c.validator.Valid(token)
	c.cache.Add(token, ok)
	return ok
}

// NormalizeDomain lowercases a domain and strips a single leading "www." label,
// so that www.example.com and example.com end up as the same rule.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(domain)
	return strings.TrimPrefix(domain, "www.")
}
