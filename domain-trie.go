package adrules

import (
	"github.com/miekg/dns"
)

// domainTrie holds domain names as a graph of maps, keyed by label from the
// TLD downwards. A "" key marks the end of a stored name.
type domainTrie struct {
	root node
}

type node map[string]node

func newDomainTrie() *domainTrie {
	return &domainTrie{root: make(node)}
}

func (t *domainTrie) add(name string) {
	parts := dns.SplitDomainName(name)
	n := t.root
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		subNode, ok := n[part]
		if !ok {
			subNode = make(node)
			n[part] = subNode
		}
		n = subNode
	}
	n[""] = nil
}

// covers returns true if a stored name is a parent domain of name. With
// includeSelf, name itself being stored counts as well.
func (t *domainTrie) covers(name string, includeSelf bool) bool {
	parts := dns.SplitDomainName(name)
	n := t.root
	for i := len(parts) - 1; i >= 0; i-- {
		subNode, ok := n[parts[i]]
		if !ok {
			return false
		}
		if _, ok := subNode[""]; ok && (i > 0 || includeSelf) {
			return true
		}
		n = subNode
	}
	return false
}
