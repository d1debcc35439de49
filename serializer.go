package adrules

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DocumentVersion is the ruleset format version understood by the filter engine.
const DocumentVersion = 3

// Document is the JSON ruleset artifact.
type Document struct {
	Version int          `json:"version"`
	Rules   []RuleObject `json:"rules"`
}

// RuleObject carries the values of exactly one rule kind.
type RuleObject struct {
	Domain       []string `json:"domain,omitempty"`
	DomainSuffix []string `json:"domain_suffix,omitempty"`
	DomainRegex  []string `json:"domain_regex,omitempty"`
}

// Serialize builds a document from a rule set. Objects appear in the order
// domain, domain_suffix, domain_regex and are left out when empty.
func Serialize(set *RuleSet) *Document {
	doc := &Document{
		Version: DocumentVersion,
		Rules:   []RuleObject{},
	}
	if values := set.Exact(); len(values) > 0 {
		doc.Rules = append(doc.Rules, RuleObject{Domain: values})
	}
	if values := set.Suffix(); len(values) > 0 {
		doc.Rules = append(doc.Rules, RuleObject{DomainSuffix: values})
	}
	if values := set.Regex(); len(values) > 0 {
		doc.Rules = append(doc.Rules, RuleObject{DomainRegex: values})
	}
	return doc
}

// RuleSet rebuilds the rule set a document was serialized from.
func (d *Document) RuleSet() *RuleSet {
	set := NewRuleSet()
	for _, obj := range d.Rules {
		for _, v := range obj.Domain {
			set.Add(ClassifiedRule{Kind: Exact, Value: v})
		}
		for _, v := range obj.DomainSuffix {
			set.Add(ClassifiedRule{Kind: Suffix, Value: v})
		}
		for _, v := range obj.DomainRegex {
			set.Add(ClassifiedRule{Kind: Regex, Value: v})
		}
	}
	return set
}

// Counts returns the number of values per kind.
func (d *Document) Counts() map[RuleKind]int {
	counts := make(map[RuleKind]int, len(Kinds))
	for _, obj := range d.Rules {
		counts[Exact] += len(obj.Domain)
		counts[Suffix] += len(obj.DomainSuffix)
		counts[Regex] += len(obj.DomainRegex)
	}
	return counts
}

// Encode writes the document as indented JSON. Non-ASCII characters and HTML
// characters are written literally.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ReadDocument decodes a ruleset document.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "failed to decode ruleset")
	}
	if d.Version != DocumentVersion {
		return nil, errors.Errorf("unsupported ruleset version %d", d.Version)
	}
	return &d, nil
}

// WriteDocument writes the document to filename. The previous content of the
// file stays in place until the new document is completely on disk.
func WriteDocument(d *Document, filename string) error {
	return writeFileAtomic(filename, d.Encode)
}

// LogSummary logs the number of rules per kind and the total.
func LogSummary(d *Document, filename string) {
	counts := d.Counts()
	fields := logrus.Fields{"file": filename}
	var total int
	for _, kind := range Kinds {
		fields[kind.String()] = counts[kind]
		total += counts[kind]
	}
	fields["total"] = total
	Log.WithFields(fields).Info("ruleset written")
}
