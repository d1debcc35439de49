/*
Package adrules compiles public ad-blocking lists into a typed ruleset that can be
consumed by a DNS or content filter. It understands Adblock Plus network filters,
hosts files, plain domain lists and regex filters.

Classification

Every line of a source list is passed through a Classifier which decides, based on an
ordered set of patterns, whether the line is an exact domain match, a domain suffix
match, a domain regex, or not a usable rule at all. What a Classifier emits for the
ambiguous cases (||domain^ and bare domains) as well as the domain validation rules is
controlled by a ClassificationPolicy.

Aggregation

An Aggregator runs all lines of all sources through the classifier and folds the
results into a RuleSet which deduplicates them by kind and value. Sources that fail
to load are logged and skipped.

Serialization

A RuleSet is turned into a versioned Document and written as JSON. Writes go through
a temporary file so a crash never leaves a truncated ruleset behind.

Downloading

A Downloader fetches the source lists into a local directory with bounded concurrency
and skips rewriting files whose content hash is unchanged.
*/
package adrules
