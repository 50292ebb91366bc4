package portaudio

import (
	"codeberg.org/miketth/dyscover/pkg/audio"
	"context"
	"fmt"
	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"
	"sync"
	"time"
)

// Source fills an interleaved stereo buffer. It runs on the audio thread.
type Source interface {
	Mix(out []float32)
}

// Output drives a Source from the default output device.
type Output struct {
	stream *portaudio.Stream
	log    *zap.SugaredLogger
}

func OpenOutput(source Source, log *zap.SugaredLogger) (*Output, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, audio.Channels, audio.SampleRate, audio.FramesPerBuffer, source.Mix)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("open output stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("start output stream: %w", err)
	}

	log.Infow("audio output started", "rate", audio.SampleRate, "frames", audio.FramesPerBuffer)
	return &Output{stream: stream, log: log}, nil
}

func (o *Output) Close() error {
	if err := o.stream.Stop(); err != nil {
		o.log.Warnw("stop output stream", "error", err)
	}
	if err := o.stream.Close(); err != nil {
		return fmt.Errorf("close output stream: %w", err)
	}
	return portaudio.Terminate()
}

// Speaker plays mono speech audio one utterance at a time.
type Speaker struct {
	mu  sync.Mutex
	log *zap.SugaredLogger
}

func OpenSpeaker(log *zap.SugaredLogger) (*Speaker, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &Speaker{log: log}, nil
}

func (s *Speaker) Close() error {
	return portaudio.Terminate()
}

// Play blocks until samples have been played or ctx is cancelled.
func (s *Speaker) Play(ctx context.Context, samples []float32, sampleRate int) error {
	if len(samples) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	idx := 0

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), audio.FramesPerBuffer, func(out []float32) {
		mu.Lock()
		defer mu.Unlock()

		for i := range out {
			if idx < len(samples) {
				out[i] = samples[idx]
				idx++
			} else {
				out[i] = 0
			}
		}

		if idx >= len(samples) {
			once.Do(func() { close(done) })
		}
	})
	if err != nil {
		return fmt.Errorf("open speech stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start speech stream: %w", err)
	}

	// generous upper bound in case the device stalls
	limit := time.Duration(float64(len(samples))/float64(sampleRate)*1.5*float64(time.Second)) + time.Second

	select {
	case <-done:
	case <-ctx.Done():
		if err := stream.Abort(); err != nil {
			s.log.Debugw("abort speech stream", "error", err)
		}
		return ctx.Err()
	case <-time.After(limit):
		s.log.Warn("speech playback timed out")
	}

	if err := stream.Stop(); err != nil {
		return fmt.Errorf("stop speech stream: %w", err)
	}
	return nil
}
