package audio

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"testing"
)

func constantClip(value float32, frames, channels int) *Clip {
	samples := make([]float32, frames*channels)
	for i := range samples {
		samples[i] = value
	}
	return &Clip{Samples: samples, Channels: channels, SampleRate: SampleRate}
}

func newTestMixer(t *testing.T) *Mixer {
	return NewMixer(t.TempDir(), SampleRate, zaptest.NewLogger(t).Sugar())
}

func (m *Mixer) snapshot() []instance {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]instance, len(m.playing))
	for i, inst := range m.playing {
		out[i] = *inst
	}
	return out
}

func TestFadeInFromSilence(t *testing.T) {
	m := newTestMixer(t)
	m.Play(constantClip(1, SampleRate, 1))

	require.Len(t, m.snapshot(), 1)
	assert.Equal(t, float32(0), m.snapshot()[0].volume)

	out := make([]float32, 2*100)
	m.Mix(out)

	for f := 1; f < 100; f++ {
		assert.Greater(t, out[2*f], out[2*(f-1)], "frame %d", f)
		assert.Equal(t, out[2*f], out[2*f+1], "mono is duplicated")
	}
	assert.InDelta(t, 100*m.fadeRate, m.snapshot()[0].volume, 1e-5)
}

func TestCrossfade(t *testing.T) {
	m := newTestMixer(t)
	m.Play(constantClip(0.5, SampleRate, 1))
	m.Mix(make([]float32, 2*500))

	m.Play(constantClip(0.5, SampleRate, 1))
	insts := m.snapshot()
	require.Len(t, insts, 2)
	assert.True(t, insts[0].fadingOut)
	assert.False(t, insts[1].fadingOut)

	prev := insts[0].volume
	require.Greater(t, prev, float32(0))

	for i := 0; i < 1000; i++ {
		m.Mix(make([]float32, 2))
		insts = m.snapshot()
		if len(insts) == 1 {
			break
		}
		assert.Less(t, insts[0].volume, prev)
		prev = insts[0].volume
	}

	insts = m.snapshot()
	require.Len(t, insts, 1)
	assert.False(t, insts[0].fadingOut)
}

func TestStopPlayingFadesEverything(t *testing.T) {
	m := newTestMixer(t)
	m.Play(constantClip(0.5, SampleRate, 1))
	m.Play(constantClip(0.5, SampleRate, 2))
	m.StopPlaying()

	for _, inst := range m.snapshot() {
		assert.True(t, inst.fadingOut)
	}

	m.Mix(make([]float32, 2*FramesPerBuffer))
	assert.Equal(t, 0, m.Playing())
}

func TestExhaustedInstanceIsRemoved(t *testing.T) {
	m := newTestMixer(t)
	m.Play(constantClip(0.1, 10, 1))

	m.Mix(make([]float32, 2*FramesPerBuffer))
	assert.Equal(t, 0, m.Playing())
}

func TestStereoReadInterleaved(t *testing.T) {
	m := newTestMixer(t)
	clip := &Clip{Samples: []float32{1, -1, 1, -1, 1, -1}, Channels: 2, SampleRate: SampleRate}
	m.Play(clip)

	out := make([]float32, 6)
	m.Mix(out)
	for f := 0; f < 3; f++ {
		assert.Greater(t, out[2*f], float32(0))
		assert.Less(t, out[2*f+1], float32(0))
	}
}

func TestHardClipping(t *testing.T) {
	m := newTestMixer(t)
	m.fadeRate = 1

	loud := constantClip(0.9, 100, 1)
	m.Play(loud)
	m.Mix(make([]float32, 2))
	m.mu.Lock()
	m.playing = append(m.playing, &instance{clip: loud, volume: 1})
	m.playing[0].fadingOut = false
	m.mu.Unlock()

	out := make([]float32, 2*10)
	m.Mix(out)
	for _, v := range out {
		assert.LessOrEqual(t, v, float32(1))
		assert.GreaterOrEqual(t, v, float32(-1))
	}
	assert.Equal(t, float32(1), out[0])
}

func TestPlaySoundFile(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, dir, "a.wav", SampleRate, 16, 1, 1, make([]int, 1000))

	m := NewMixer(dir, SampleRate, zaptest.NewLogger(t).Sugar())
	m.PlaySoundFile("a.wav")
	m.PlaySoundFile("a.wav")
	assert.Equal(t, 2, m.Playing())

	insts := m.snapshot()
	assert.Same(t, insts[0].clip, insts[1].clip)

	m.PlaySoundFile("missing.wav")
	m.PlaySoundFile("")
	assert.Equal(t, 2, m.Playing())
}

func TestMixSilenceWhenIdle(t *testing.T) {
	m := newTestMixer(t)
	out := []float32{3, 3, 3, 3}
	m.Mix(out)
	assert.Equal(t, []float32{0, 0, 0, 0}, out)
}
