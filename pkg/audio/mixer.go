package audio

import (
	"go.uber.org/zap"
	"path/filepath"
	"sync"
)

const (
	SampleRate      = 44100
	Channels        = 2
	FramesPerBuffer = 256
	FadeSeconds     = 0.15
)

// instance is one playback of a clip. Only Mix advances pos and volume.
type instance struct {
	clip      *Clip
	pos       int
	volume    float32
	fadingOut bool
}

// Mixer plays overlapping sound cues, crossfading from the old ones to the newest.
type Mixer struct {
	dir      string
	fadeRate float32
	log      *zap.SugaredLogger

	cacheMu sync.Mutex
	cache   map[string]*Clip

	mu      sync.Mutex
	playing []*instance
}

func NewMixer(dir string, sampleRate int, log *zap.SugaredLogger) *Mixer {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	return &Mixer{
		dir:      dir,
		fadeRate: float32(1 / (FadeSeconds * float64(sampleRate))),
		log:      log,
		cache:    make(map[string]*Clip),
	}
}

// PlaySoundFile plays a file from the sound directory. Missing or undecodable
// files are logged and otherwise ignored.
func (m *Mixer) PlaySoundFile(name string) {
	if name == "" {
		return
	}

	clip, err := m.load(name)
	if err != nil {
		m.log.Warnw("cannot play sound", "name", name, "error", err)
		return
	}

	m.Play(clip)
}

// Play fades out everything that is playing and starts clip from silence.
func (m *Mixer) Play(clip *Clip) {
	if clip == nil || len(clip.Samples) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, inst := range m.playing {
		inst.fadingOut = true
	}
	m.playing = append(m.playing, &instance{clip: clip})
}

// StopPlaying fades out every playing sound.
func (m *Mixer) StopPlaying() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, inst := range m.playing {
		inst.fadingOut = true
	}
}

// Playing is the number of instances that have not finished yet.
func (m *Mixer) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.playing)
}

// Mix renders the next len(out)/2 interleaved stereo frames. It is the audio
// callback and must not block on anything but the instance list.
func (m *Mixer) Mix(out []float32) {
	for i := range out {
		out[i] = 0
	}
	frames := len(out) / Channels

	m.mu.Lock()
	alive := m.playing[:0]
	for _, inst := range m.playing {
		if m.mixInstance(inst, out, frames) {
			alive = append(alive, inst)
		}
	}
	for i := len(alive); i < len(m.playing); i++ {
		m.playing[i] = nil
	}
	m.playing = alive
	m.mu.Unlock()

	for i, v := range out {
		switch {
		case v > 1:
			out[i] = 1
		case v < -1:
			out[i] = -1
		}
	}
}

// mixInstance adds inst into out and reports whether it is still alive.
func (m *Mixer) mixInstance(inst *instance, out []float32, frames int) bool {
	samples := inst.clip.Samples
	stereo := inst.clip.Channels == 2

	for f := 0; f < frames; f++ {
		if inst.fadingOut {
			inst.volume -= m.fadeRate
			if inst.volume <= 0 {
				inst.volume = 0
				return false
			}
		} else if inst.volume < 1 {
			inst.volume += m.fadeRate
			if inst.volume > 1 {
				inst.volume = 1
			}
		}

		if inst.pos >= len(samples) {
			return false
		}

		left := samples[inst.pos]
		right := left
		if stereo && inst.pos+1 < len(samples) {
			right = samples[inst.pos+1]
		}

		out[f*Channels] += left * inst.volume
		out[f*Channels+1] += right * inst.volume

		inst.pos += inst.clip.Channels
	}

	return inst.pos < len(samples)
}

func (m *Mixer) load(name string) (*Clip, error) {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()

	if clip, ok := m.cache[name]; ok {
		return clip, nil
	}

	clip, err := DecodeFile(filepath.Join(m.dir, name))
	if err != nil {
		return nil, err
	}

	if clip.SampleRate != SampleRate {
		m.log.Debugw("sound sample rate differs from output", "name", name, "rate", clip.SampleRate)
	}

	m.cache[name] = clip
	return clip, nil
}
