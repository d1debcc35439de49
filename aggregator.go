package adrules

import (
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Aggregator runs the lines of many source lists through a classifier and
// collects the results in a single RuleSet.
type Aggregator struct {
	classifier *Classifier
}

var (
	linesTotal = getVarCounter("aggregator", "lines_total", "Lines read from source lists by result.", "result")
	rulesTotal = getVarCounter("aggregator", "rules_total", "Rules classified by kind, before deduplication.", "kind")
	filesTotal = getVarCounter("aggregator", "files_total", "Source lists processed by result.", "result")
)

// NewAggregator returns an aggregator using the given classifier.
func NewAggregator(classifier *Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

// Aggregate loads every source and returns the combined rules. Sources that fail
// to load are logged and skipped, rules read from them before the failure are kept.
func (a *Aggregator) Aggregate(loaders ...BlocklistLoader) *RuleSet {
	set := NewRuleSet()
	if len(loaders) == 0 {
		Log.Warn("no source lists to process")
		return set
	}
	Log.WithField("sources", len(loaders)).Info("processing source lists")
	for i, loader := range loaders {
		log := sourceLogger(loader.String()).WithField("n", i+1)
		log.Info("processing list")
		if err := a.AggregateOne(set, loader); err != nil {
			log.WithError(err).Error("failed to process list")
		}
	}
	return set
}

// AggregateOne classifies the lines of one source into set.
func (a *Aggregator) AggregateOne(set *RuleSet, loader BlocklistLoader) error {
	lines, err := loader.Load()

	var classified, dropped, undecodable int
	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if !utf8.ValidString(line) {
			undecodable++
			continue
		}
		rules := a.classifier.Classify(line)
		if len(rules) == 0 {
			dropped++
			continue
		}
		classified++
		set.Add(rules...)
		for _, r := range rules {
			rulesTotal.WithLabelValues(r.Kind.String()).Inc()
		}
	}
	linesTotal.WithLabelValues("classified").Add(float64(classified))
	linesTotal.WithLabelValues("dropped").Add(float64(dropped))
	linesTotal.WithLabelValues("undecodable").Add(float64(undecodable))

	sourceLogger(loader.String()).WithFields(logrus.Fields{
		"lines":       len(lines),
		"classified":  classified,
		"undecodable": undecodable,
	}).Debug("list processed")

	if err != nil {
		filesTotal.WithLabelValues("failed").Inc()
		return &SourceError{Source: loader.String(), Err: err}
	}
	filesTotal.WithLabelValues("ok").Inc()
	return nil
}
