package adrules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRuleKind(t *testing.T) {
	tests := []struct {
		in   string
		kind RuleKind
	}{
		{"exact", Exact},
		{"Suffix", Suffix},
		{" domain_suffix ", Suffix},
		{"domain", Exact},
		{"regex", Regex},
	}
	for _, test := range tests {
		kind, err := ParseRuleKind(test.in)
		require.NoError(t, err, test.in)
		require.Equal(t, test.kind, kind, test.in)
	}
	_, err := ParseRuleKind("keyword")
	require.Error(t, err)

	require.Equal(t, "domain_regex", Regex.String())
	require.Equal(t, "RuleKind(9)", RuleKind(9).String())
}

func TestParseValidationMode(t *testing.T) {
	mode, err := ParseValidationMode("IDN")
	require.NoError(t, err)
	require.Equal(t, Strict, mode)

	mode, err = ParseValidationMode("loose")
	require.NoError(t, err)
	require.Equal(t, Loose, mode)

	_, err = ParseValidationMode("")
	require.Error(t, err)
}

func TestPolicyValidator(t *testing.T) {
	opt := DefaultPolicy()
	require.NoError(t, opt.Validate())
	require.False(t, opt.SkipLocalHostnames)
	require.IsType(t, &StrictValidator{}, opt.Validator())

	opt.Validation = Loose
	require.IsType(t, LooseValidator{}, opt.Validator())

	opt.Validation = ValidationMode(5)
	require.Error(t, opt.Validate())
}
