// Package audio reads just enough of a RIFF/WAV file to answer the two
// questions the timeline needs: how long a rendered chunk plays, and how much
// leading silence precedes the first spoken word.
package audio
