package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Info describes the PCM format of a WAV file.
type Info struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	DataBytes     int
}

// Frames returns the number of sample frames in the data chunk.
func (i Info) Frames() int {
	bytesPerFrame := i.Channels * i.BitsPerSample / 8
	if bytesPerFrame == 0 {
		return 0
	}
	return i.DataBytes / bytesPerFrame
}

// DurationSeconds returns the playback duration of the data chunk.
func (i Info) DurationSeconds() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.Frames()) / float64(i.SampleRate)
}

// Duration returns the duration of a WAV file in seconds.
func Duration(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open wav: %w", err)
	}
	defer file.Close()

	info, _, err := readHeader(file)
	if err != nil {
		return 0, err
	}
	return info.DurationSeconds(), nil
}

// LeadingSilence returns the duration of leading silence in seconds. A sample
// counts as silent when its absolute amplitude is below threshold; the run
// ends once a loud sample follows at least minRun silent samples. Only 16-bit
// PCM is supported, which is what piper emits.
func LeadingSilence(path string, threshold int16, minRun int) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open wav: %w", err)
	}
	defer file.Close()

	info, data, err := readHeader(file)
	if err != nil {
		return 0, err
	}
	if info.BitsPerSample != 16 {
		return 0, fmt.Errorf("unsupported sample width %d bits", info.BitsPerSample)
	}

	run := 0
	buf := make([]byte, 8192)
	remaining := info.DataBytes
scan:
	for remaining > 0 {
		toRead := len(buf)
		if remaining < toRead {
			toRead = remaining
		}
		n, err := io.ReadFull(data, buf[:toRead])
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("read samples: %w", err)
		}
		if n == 0 {
			break
		}
		remaining -= n
		for i := 0; i+1 < n; i += 2 {
			sample := int16(binary.LittleEndian.Uint16(buf[i : i+2]))
			abs := int32(sample)
			if abs < 0 {
				abs = -abs
			}
			if abs < int32(threshold) {
				run++
			} else if run >= minRun {
				break scan
			} else {
				run = 0
			}
		}
		if err != nil {
			break
		}
	}

	perSecond := info.SampleRate * info.Channels
	if perSecond == 0 {
		return 0, nil
	}
	return float64(run) / float64(perSecond), nil
}

// readHeader parses the RIFF container up to the data chunk and leaves the
// reader positioned at the first sample.
func readHeader(r io.ReadSeeker) (Info, io.Reader, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Info{}, nil, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Info{}, nil, errors.New("not a wav file")
	}

	var info Info
	haveFmt := false
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return Info{}, nil, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := int(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			if size < 16 {
				return Info{}, nil, errors.New("malformed fmt chunk")
			}
			var fmtBody [16]byte
			if _, err := io.ReadFull(r, fmtBody[:]); err != nil {
				return Info{}, nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			info.Channels = int(binary.LittleEndian.Uint16(fmtBody[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(fmtBody[4:8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(fmtBody[14:16]))
			if skip := size - 16; skip > 0 {
				if _, err := r.Seek(int64(skip), io.SeekCurrent); err != nil {
					return Info{}, nil, fmt.Errorf("skip fmt extension: %w", err)
				}
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return Info{}, nil, errors.New("data chunk before fmt chunk")
			}
			info.DataBytes = size
			return info, io.LimitReader(r, int64(size)), nil
		default:
			// Chunks are word-aligned; odd sizes carry a pad byte.
			if size%2 == 1 {
				size++
			}
			if _, err := r.Seek(int64(size), io.SeekCurrent); err != nil {
				return Info{}, nil, fmt.Errorf("skip %q chunk: %w", id, err)
			}
		}
	}
}
