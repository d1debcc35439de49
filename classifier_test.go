package adrules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T, opt ClassificationPolicy) *Classifier {
	c, err := NewClassifier(opt, nil)
	require.NoError(t, err)
	return c
}

func TestClassifierDefaultPolicy(t *testing.T) {
	c := newTestClassifier(t, DefaultPolicy())

	tests := []struct {
		line  string
		rules []ClassifiedRule
	}{
		// block directives
		{"||ads.example.com^", []ClassifiedRule{{Suffix, "ads.example.com"}}},
		{"||WWW.Ads.Example.com^", []ClassifiedRule{{Suffix, "ads.example.com"}}},
		{"  ||tracker.example.net^  \r", []ClassifiedRule{{Suffix, "tracker.example.net"}}},
		{"||ads.example.com^$third-party", nil},
		{"||^", nil},

		// plain domains
		{"example.com", []ClassifiedRule{{Suffix, "example.com"}}},
		{"www.example.com", []ClassifiedRule{{Suffix, "example.com"}}},
		{"bücher.de", []ClassifiedRule{{Suffix, "bücher.de"}}},

		// hosts
		{"0.0.0.0 a.com b.com", []ClassifiedRule{{Suffix, "a.com"}, {Suffix, "b.com"}}},
		{"127.0.0.1\tTracker.Example.NET", []ClassifiedRule{{Suffix, "tracker.example.net"}}},
		{"0.0.0.0 a.com #x b.com", []ClassifiedRule{{Suffix, "a.com"}, {Suffix, "b.com"}}},
		{"0.0.0.0 a.com !x b.com", []ClassifiedRule{{Suffix, "a.com"}, {Suffix, "b.com"}}},
		{"0.0.0.0 ads.com #", []ClassifiedRule{{Suffix, "ads.com"}}},
		{"0.0.0.0 bad_name ads.com", []ClassifiedRule{{Suffix, "ads.com"}}},
		{"127.0.0.1 localhost", []ClassifiedRule{{Suffix, "localhost"}}},
		{"255.255.255.255 broadcasthost", []ClassifiedRule{{Suffix, "broadcasthost"}}},

		// regex
		{`/^track\d+\.net$/`, []ClassifiedRule{{Regex, `^track\d+\.net$`}}},
		{"/[invalid(/", nil},
		{`/(?=ads)/`, nil},
		{"/", nil},

		// wildcards
		{"*.ads.example.org", []ClassifiedRule{{Suffix, "ads.example.org"}}},
		{"*.www.example.org", []ClassifiedRule{{Suffix, "example.org"}}},
		{"ad*.example.com", []ClassifiedRule{{Regex, `ad.*\.example\.com`}}},
		{"*ads*.example.com", []ClassifiedRule{{Regex, `.*ads.*\.example\.com`}}},
		{"ad*.example.com/banner", nil},
		{"ad*.example.com:8080", nil},

		// anything else
		{"example.com:8080", nil},
		{"ads", []ClassifiedRule{{Suffix, "ads"}}},
		{"-ads-", nil},
		{"&ad_box=", nil},
	}
	for _, test := range tests {
		require.Equal(t, test.rules, c.Classify(test.line), "line: %q", test.line)
	}
}

func TestClassifierSkipsNonNetworkRules(t *testing.T) {
	c := newTestClassifier(t, DefaultPolicy())
	lines := []string{
		"",
		"   ",
		"! Title: EasyList",
		"!||ads.example.com^",
		"# hosts comment",
		"#example.com",
		"@@||example.com^",
		"@@example.com",
		"// comment",
		"//example.com",
		"[Adblock Plus 2.0]",
		"[example.com]",
		"example.com##.ad-banner",
		"##.ad-banner",
		"example.com#@#.ad",
	}
	for _, line := range lines {
		require.Empty(t, c.Classify(line), "line: %q", line)
	}
}

func TestClassifierExactPolicy(t *testing.T) {
	opt := DefaultPolicy()
	opt.BlockDirective = Exact
	opt.PlainDomain = Exact
	c := newTestClassifier(t, opt)

	require.Equal(t, []ClassifiedRule{{Exact, "ads.example.com"}}, c.Classify("||ads.example.com^"))
	require.Equal(t, []ClassifiedRule{{Exact, "example.com"}}, c.Classify("www.example.com"))
	require.Equal(t, []ClassifiedRule{{Exact, "a.com"}, {Exact, "b.com"}}, c.Classify("0.0.0.0 a.com b.com"))

	// Wildcard subdomains are always suffix rules
	require.Equal(t, []ClassifiedRule{{Suffix, "example.org"}}, c.Classify("*.example.org"))
}

func TestClassifierWithoutRegex(t *testing.T) {
	opt := DefaultPolicy()
	opt.Regex = false
	c := newTestClassifier(t, opt)

	require.Empty(t, c.Classify(`/^track\d+\.net$/`))
	require.Empty(t, c.Classify("ad*.example.com"))
	require.Equal(t, []ClassifiedRule{{Suffix, "ads.example.org"}}, c.Classify("*.ads.example.org"))
}

func TestClassifierLooseValidation(t *testing.T) {
	opt := DefaultPolicy()
	opt.Validation = Loose
	c := newTestClassifier(t, opt)

	require.Equal(t, []ClassifiedRule{{Suffix, "example.com"}}, c.Classify("||example.com^"))
	require.Empty(t, c.Classify("localhost"))
	require.Empty(t, c.Classify("bücher.de"))
	require.Empty(t, c.Classify("1.2.3.4"))
}

func TestClassifierSkipLocalHostnames(t *testing.T) {
	opt := DefaultPolicy()
	opt.SkipLocalHostnames = true
	c := newTestClassifier(t, opt)

	require.Empty(t, c.Classify("127.0.0.1 localhost"))
	require.Empty(t, c.Classify("127.0.0.1 localhost.localdomain"))
	require.Empty(t, c.Classify("255.255.255.255 broadcasthost"))
	require.Empty(t, c.Classify("0.0.0.0 ip6-localhost ip6-loopback"))
	require.Empty(t, c.Classify("0.0.0.0 0.0.0.0"))
	require.Equal(t, []ClassifiedRule{{Suffix, "ads.com"}}, c.Classify("127.0.0.1 localhost ads.com"))
	require.Equal(t, []ClassifiedRule{{Suffix, "a.com"}, {Suffix, "b.com"}}, c.Classify("0.0.0.0 a.com # local b.com"))
}

func TestClassifierInvalidPolicy(t *testing.T) {
	opt := DefaultPolicy()
	opt.BlockDirective = Regex
	_, err := NewClassifier(opt, nil)
	require.Error(t, err)

	opt = DefaultPolicy()
	opt.PlainDomain = Regex
	_, err = NewClassifier(opt, nil)
	require.Error(t, err)
}
