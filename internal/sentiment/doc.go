// Package sentiment classifies free text into a score, a label and a few emotion tags.
//
// Two analyzers are available. LocalAnalyzer scores text with an embedded word lexicon and
// Spanish keyword families and never fails. RemoteAnalyzer asks a generative model for a JSON
// verdict and falls back to a local analyzer on any error, timeout or unreadable answer.
// NewAnalyzer picks one of them once, at construction time.
package sentiment
