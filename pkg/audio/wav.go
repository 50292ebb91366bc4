package audio

import (
	"errors"
	"fmt"
	"github.com/go-audio/wav"
	"io"
	"os"
)

const wavFormatPCM = 1

var ErrUnsupportedFormat = errors.New("unsupported wav format")

// Clip is decoded audio, shared read-only between every instance playing it.
type Clip struct {
	// Samples are interleaved and normalized to [-1, 1].
	Samples    []float32
	Channels   int
	SampleRate int
}

// Frames is the number of sample frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Decode reads an uncompressed PCM WAV stream with 8 or 16 bit samples in one or two channels.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a wav file: %w", ErrUnsupportedFormat)
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("audio format %d: %w", dec.WavAudioFormat, ErrUnsupportedFormat)
	}
	if dec.NumChans != 1 && dec.NumChans != 2 {
		return nil, fmt.Errorf("%d channels: %w", dec.NumChans, ErrUnsupportedFormat)
	}

	var scale func(int) float32
	switch dec.BitDepth {
	case 8:
		scale = func(v int) float32 { return float32(v-128) / 128 }
	case 16:
		scale = func(v int) float32 { return float32(v) / 32768 }
	default:
		return nil, fmt.Errorf("%d bit samples: %w", dec.BitDepth, ErrUnsupportedFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = scale(v)
	}

	return &Clip{
		Samples:    samples,
		Channels:   int(dec.NumChans),
		SampleRate: int(dec.SampleRate),
	}, nil
}

func DecodeFile(filename string) (*Clip, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}
