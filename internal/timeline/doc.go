// Package timeline reconstructs word-accurate subtitle timing from
// chunk-level audio durations.
//
// The synthesizer reports only how long each chunk plays, so the builder
// allocates every chunk's duration across its words proportionally to word
// length, folds fixed pause allowances into punctuation-bearing words, and
// pins each chunk's last cue to the exact accumulated boundary so the final
// cue end equals the total narration duration with no floating-point drift.
package timeline
