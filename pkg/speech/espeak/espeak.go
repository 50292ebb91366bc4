package espeak

import (
	"codeberg.org/miketth/dyscover/pkg/audio"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
)

const (
	DefaultBinary = "espeak-ng"
	DefaultWPM    = 175
	minWPM        = 80
	maxWPM        = 450
	maxAmplitude  = 200
)

var ErrMissingData = errors.New("missing speech data")

// Player plays mono float samples, blocking until done or ctx is cancelled.
type Player interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
}

type Options struct {
	Binary string
	Voice  string
	// DataDir is an espeak-ng-data directory; empty uses the system one.
	DataDir string
}

// Engine synthesizes with the espeak-ng command line tool and plays the result.
type Engine struct {
	opts   Options
	player Player
	log    *zap.SugaredLogger

	path string

	mu        sync.Mutex
	wpm       int
	amplitude int
	cancel    context.CancelFunc
}

func New(opts Options, player Player, log *zap.SugaredLogger) *Engine {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	return &Engine{
		opts:      opts,
		player:    player,
		log:       log,
		wpm:       DefaultWPM,
		amplitude: maxAmplitude / 2,
	}
}

// requiredData lists the files espeak-ng cannot start without.
func (e *Engine) requiredData() []string {
	files := []string{"phontab", "phonindex", "phondata", "intonations"}
	if e.opts.Voice != "" {
		files = append(files, language(e.opts.Voice)+"_dict")
	}
	return files
}

func (e *Engine) Init() error {
	path, err := exec.LookPath(e.opts.Binary)
	if err != nil {
		return fmt.Errorf("find %s: %w", e.opts.Binary, err)
	}
	e.path = path

	if e.opts.DataDir != "" {
		missing := 0
		for _, name := range e.requiredData() {
			if _, err := os.Stat(filepath.Join(e.opts.DataDir, name)); err != nil {
				e.log.Warnw("missing speech data file", "file", name, "dir", e.opts.DataDir)
				missing++
			}
		}
		if missing > 0 {
			return fmt.Errorf("%d file(s) in %s: %w", missing, e.opts.DataDir, ErrMissingData)
		}
	}

	e.log.Infow("speech engine ready", "binary", path, "voice", e.opts.Voice, "data", e.opts.DataDir)
	return nil
}

func (e *Engine) Speak(ctx context.Context, text string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.mu.Lock()
	e.cancel = cancel
	args := e.args()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
	}()

	tmp, err := os.CreateTemp("", "dyscover-speech-*.wav")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpName)

	args = append(args, "-w", tmpName, "--", text)
	cmd := exec.CommandContext(ctx, e.path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run %s: %w: %s", e.opts.Binary, err, out)
	}

	clip, err := audio.DecodeFile(tmpName)
	if err != nil {
		return fmt.Errorf("decode speech: %w", err)
	}

	return e.player.Play(ctx, mono(clip), clip.SampleRate)
}

func (e *Engine) args() []string {
	args := []string{
		"-s", strconv.Itoa(e.wpm),
		"-a", strconv.Itoa(e.amplitude),
	}
	if e.opts.Voice != "" {
		args = append(args, "-v", e.opts.Voice)
	}
	if e.opts.DataDir != "" {
		// --path names the directory that contains espeak-ng-data
		args = append(args, "--path="+filepath.Dir(filepath.Clean(e.opts.DataDir)))
	}
	return args
}

// Stop kills the synthesizer and aborts playback of the current utterance.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}
}

// SetSpeed offsets the default rate; 0 is normal, -0.5 is half, 1 is double.
func (e *Engine) SetSpeed(speed float32) error {
	wpm := int(float32(DefaultWPM) * (1 + speed))
	if wpm < minWPM {
		wpm = minWPM
	}
	if wpm > maxWPM {
		wpm = maxWPM
	}

	e.mu.Lock()
	e.wpm = wpm
	e.mu.Unlock()
	return nil
}

// SetVolume takes a volume in [0, 1].
func (e *Engine) SetVolume(volume float32) error {
	if volume < 0 || volume > 1 {
		return fmt.Errorf("volume %v out of range", volume)
	}

	e.mu.Lock()
	e.amplitude = int(volume * maxAmplitude)
	e.mu.Unlock()
	return nil
}

func (e *Engine) Close() error {
	e.Stop()
	return nil
}

func mono(clip *audio.Clip) []float32 {
	if clip.Channels <= 1 {
		return clip.Samples
	}

	out := make([]float32, clip.Frames())
	for i := range out {
		var sum float32
		for c := 0; c < clip.Channels; c++ {
			sum += clip.Samples[i*clip.Channels+c]
		}
		out[i] = sum / float32(clip.Channels)
	}
	return out
}

// language strips the variant from a voice name, "nl+f3" becomes "nl".
func language(voice string) string {
	for i, r := range voice {
		if r == '+' || r == '-' || r == '_' {
			return voice[:i]
		}
	}
	return voice
}
