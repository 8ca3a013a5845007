// Package sym defines short glyph markers used to tag log lines by pipeline
// stage, so that log output can be filtered or skimmed by component without
// parsing message text.
package sym

const (
	Normalize = "N" // C1 normalizer
	Acronym   = "A" // C2 acronym model
	Lookup    = "L" // C3 small-vocabulary lookup
	Score     = "S" // C4 similarity scorer
	Candidate = "C" // C5 candidate generator
	Assign    = "X" // C6 assignment / decision layer
)
