package adrules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrictValidator(t *testing.T) {
	v := NewStrictValidator()
	tests := []struct {
		token string
		valid bool
	}{
		{"example.com", true},
		{"a.b.c.example.co.uk", true},
		{"Example.COM", true},
		{"localhost", true},
		{"xn--bcher-kva.de", true},
		{"bücher.de", true},
		{"例子.测试", true},
		{"ads-1.example.com", true},
		{"", false},
		{".example.com", false},
		{"example.com.", false},
		{"-example.com", false},
		{"example-.com", false},
		{"exa_mple.com", false},
		{"exa mple.com", false},
		{"*.example.com", false},
		{"example..com", false},
		{"example.com/path", false},
		{"example.com:443", false},
		{strings.Repeat("a", 64) + ".com", false},
		{strings.Repeat("a", 63) + ".com", true},
		{strings.Repeat("abcdefghi.", 26) + "com", false},
	}
	for _, test := range tests {
		require.Equal(t, test.valid, v.Valid(test.token), "token: %s", test.token)
	}
}

func TestLooseValidator(t *testing.T) {
	var v LooseValidator
	tests := []struct {
		token string
		valid bool
	}{
		{"example.com", true},
		{"sub.Example.Org", true},
		{"ads-1.example.com", true},
		{"localhost", false},
		{"1.2.3.4", false},
		{"bücher.de", false},
		{"example.c", false},
		{"example.c0m", false},
		{"example..com", false},
		{".example.com", false},
		{"example.com.", false},
		{"-ads.example.com", false},
		{`ads\.example.com`, false},
		{"a.b.c.example.com", true},
	}
	for _, test := range tests {
		require.Equal(t, test.valid, v.Valid(test.token), "token: %s", test.token)
	}
}

type countingValidator struct {
	calls int
}

func (v *countingValidator) Valid(token string) bool {
	v.calls++
	return token == "example.com"
}

func TestCachedValidator(t *testing.T) {
	inner := new(countingValidator)
	v, err := NewCachedValidator(inner, 16)
	require.NoError(t, err)

	require.True(t, v.Valid("example.com"))
	require.True(t, v.Valid("example.com"))
	require.False(t, v.Valid("example.org"))
	require.False(t, v.Valid("example.org"))
	require.Equal(t, 2, inner.calls)

	_, err = NewCachedValidator(inner, 0)
	require.Error(t, err)
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"example.com", "example.com"},
		{"WWW.Example.COM", "example.com"},
		{"www.ads.example.com", "ads.example.com"},
		{"www2.example.com", "www2.example.com"},
		{"wwwexample.com", "wwwexample.com"},
		{"sub.www.example.com", "sub.www.example.com"},
		{"BÜCHER.de", "bücher.de"},
	}
	for _, test := range tests {
		require.Equal(t, test.out, NormalizeDomain(test.in), "domain: %s", test.in)
	}
}

func TestNormalizeDomainCollapsesWWW(t *testing.T) {
	v := NewStrictValidator()
	for _, d := range []string{"example.com", "Ads.Example.org", "bücher.de", "localhost", "a.b.c.d"} {
		require.True(t, v.Valid(d), d)
		require.Equal(t, NormalizeDomain(d), NormalizeDomain("www."+d), d)
	}
}
