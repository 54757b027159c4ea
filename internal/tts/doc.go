// Package tts drives the piper text-to-speech engine, one external process
// per chunk, with a bounded worker pool that reassembles results in chunk
// order. The core consumes exactly two things from a render: the audio file
// and its measured duration.
package tts
