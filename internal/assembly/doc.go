// Package assembly renders the final vertical video.
//
// It concatenates per-chunk narration audio, frame-aligns subtitle cues to
// the fixed output frame rate, and drives ffmpeg to merge the looping
// background, the narration track, and burned-in subtitles into a
// 1080x1920 60fps H.264/AAC file.
package assembly
