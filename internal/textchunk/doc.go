// Package textchunk splits narration text into synthesizer-sized pieces
// without ever breaking a word.
package textchunk
