// Package pipeline orchestrates one story-to-video generation run.
//
// A run selects an unused story from the feed, sanitizes and optionally
// grammar-corrects its text, splits it into synthesizer-sized chunks, renders
// narration audio concurrently, reconstructs word-level subtitle timing from
// the measured chunk durations, and assembles the final vertical video. Runs
// are serialized with a file lock and all intermediates are confined to a
// per-run staging directory.
package pipeline
