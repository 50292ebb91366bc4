package dyscover

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"codeberg.org/miketth/dyscover/pkg/layouts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"testing"
)

type testCore struct {
	*Core
	settings  *fakeSettings
	speaker   *fakeSpeaker
	sounds    *fakeSounds
	handler   *fakeHandler
	injector  *fakeInjector
	clipboard *fakeClipboard
	notifier  *fakeNotifier
}

func stroke(k keys.Key) keys.KeyStroke { return keys.KeyStroke{Key: k} }

func testLayout() *layouts.Layout {
	return &layouts.Layout{
		Name: "test",
		Entries: []layouts.Entry{
			{Key: keys.H, Output: []keys.KeyStroke{stroke(keys.H)}, Sound: "h.wav"},
			{Key: keys.I, Output: []keys.KeyStroke{stroke(keys.I)}},
			{Key: keys.A, Shift: true, Output: []keys.KeyStroke{{Key: keys.A, Shift: true}}},
			{Key: keys.X, Ctrl: true, Output: []keys.KeyStroke{{Key: keys.X, Ctrl: true}}},
			{Key: keys.Space, Output: []keys.KeyStroke{stroke(keys.Space)}},
			{Key: keys.Enter, Output: []keys.KeyStroke{stroke(keys.Enter)}},
			{Key: keys.Dot, Output: []keys.KeyStroke{stroke(keys.Dot)}, Sentence: true},
			{Key: keys.Backspace, Output: []keys.KeyStroke{stroke(keys.Backspace)}},
			{Key: keys.Esc, Output: []keys.KeyStroke{stroke(keys.Esc)}},
		},
	}
}

func newTestCore(t *testing.T) *testCore {
	reg := layouts.NewRegistry()
	require.NoError(t, reg.Register(testLayout()))
	require.True(t, reg.SetActiveLayout("test"))

	tc := &testCore{
		settings:  defaultSettings(),
		speaker:   &fakeSpeaker{},
		sounds:    &fakeSounds{},
		handler:   &fakeHandler{},
		injector:  &fakeInjector{},
		clipboard: &fakeClipboard{},
		notifier:  &fakeNotifier{},
	}
	tc.Core = NewCore(Deps{
		Settings:   tc.settings,
		Translator: reg,
		Handler:    tc.handler,
		Injector:   tc.injector,
		Speaker:    tc.speaker,
		Sounds:     tc.sounds,
		Clipboard:  tc.clipboard,
		Notifier:   tc.notifier,
	}, zaptest.NewLogger(t).Sugar())
	tc.copyDelay = 0
	return tc
}

func (tc *testCore) tap(k keys.Key, mods keys.Modifiers) {
	tc.OnKeyEvent(keys.Event{Key: k, Type: keys.KeyDown, Modifiers: mods})
	tc.OnKeyEvent(keys.Event{Key: k, Type: keys.KeyUp, Modifiers: mods})
}

func (tc *testCore) typeKeys(ks ...keys.Key) {
	for _, k := range ks {
		tc.tap(k, keys.Modifiers{})
	}
}

func TestWordFlush(t *testing.T) {
	tc := newTestCore(t)

	tc.typeKeys(keys.H, keys.I, keys.Space)

	assert.Equal(t, []string{"hi"}, tc.speaker.spoken)
	assert.Empty(t, tc.buffers.word)
	assert.Equal(t, "hi ", string(tc.buffers.sentence))
	assert.Equal(t, []float32{0.25}, tc.speaker.speeds)
}

func TestWordFlushOnEnter(t *testing.T) {
	tc := newTestCore(t)

	tc.typeKeys(keys.I, keys.Enter)
	assert.Equal(t, []string{"i"}, tc.speaker.spoken)

	// nothing buffered, nothing spoken
	tc.typeKeys(keys.Enter)
	assert.Equal(t, []string{"i"}, tc.speaker.spoken)
}

func TestWordsDisabled(t *testing.T) {
	tc := newTestCore(t)
	tc.settings.words = false

	tc.typeKeys(keys.H, keys.I, keys.Space)

	assert.Empty(t, tc.speaker.spoken)
	assert.Empty(t, tc.buffers.word)
}

func TestSentenceFlush(t *testing.T) {
	tc := newTestCore(t)

	tc.typeKeys(keys.H, keys.Space, keys.I, keys.Dot)

	assert.Equal(t, []string{"h", "i", "h i"}, tc.speaker.spoken)
	assert.Empty(t, tc.buffers.word)
	assert.Empty(t, tc.buffers.sentence)
}

func TestSentenceOnly(t *testing.T) {
	tc := newTestCore(t)
	tc.settings.words = false

	tc.typeKeys(keys.H, keys.I, keys.Dot)

	assert.Equal(t, []string{"hi"}, tc.speaker.spoken)
}

func TestBackspacePopsIndependently(t *testing.T) {
	tc := newTestCore(t)
	tc.buffers.word = []byte("ab")
	tc.buffers.sentence = []byte("xab")

	tc.typeKeys(keys.Backspace)

	assert.Equal(t, "a", string(tc.buffers.word))
	assert.Equal(t, "xa", string(tc.buffers.sentence))

	tc.typeKeys(keys.H, keys.Space)
	assert.Empty(t, tc.buffers.word)
	assert.Equal(t, "xah ", string(tc.buffers.sentence))

	tc.typeKeys(keys.Backspace)
	assert.Empty(t, tc.buffers.word)
	assert.Equal(t, "xah", string(tc.buffers.sentence))
}

func TestEscStopsSpeech(t *testing.T) {
	tc := newTestCore(t)

	tc.typeKeys(keys.H, keys.Esc)

	assert.Equal(t, 1, tc.speaker.stops)
	assert.Equal(t, "h", string(tc.buffers.word))
	assert.Empty(t, tc.speaker.spoken)
}

func TestKeyDownNeverTouchesBuffers(t *testing.T) {
	tc := newTestCore(t)

	tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyDown})
	assert.Empty(t, tc.buffers.word)

	tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyUp})
	assert.Equal(t, "h", string(tc.buffers.word))
}

func TestAccumulateOnKeyDown(t *testing.T) {
	tc := newTestCore(t)
	tc.settings.accumulateDown = true

	tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyDown})
	assert.Equal(t, "h", string(tc.buffers.word))
	tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyUp})
	assert.Equal(t, "h", string(tc.buffers.word))

	tc.typeKeys(keys.I, keys.Space)
	assert.Equal(t, []string{"hi"}, tc.speaker.spoken)
	assert.Equal(t, "hi ", string(tc.buffers.sentence))
}

func TestShiftedOutput(t *testing.T) {
	tc := newTestCore(t)

	tc.tap(keys.A, keys.Modifiers{Shift: true})

	assert.Equal(t, "A", string(tc.buffers.word))
	assert.Equal(t, []keys.KeyStroke{{Key: keys.A, Shift: true}}, tc.injector.strokes)
	assert.Empty(t, tc.handler.sent)
}

func TestCtrlOutputAddsNoText(t *testing.T) {
	tc := newTestCore(t)

	tc.tap(keys.X, keys.Modifiers{Ctrl: true})

	assert.Empty(t, tc.buffers.word)
	assert.Equal(t, []keys.KeyStroke{{Key: keys.X, Ctrl: true}}, tc.injector.strokes)
}

func TestInjectionThroughHandler(t *testing.T) {
	tc := newTestCore(t)

	tc.typeKeys(keys.H)

	assert.Equal(t, []sentKey{{keys.H, keys.KeyDown}, {keys.H, keys.KeyUp}}, tc.handler.sent)
	assert.Empty(t, tc.injector.strokes)
}

func TestInjectionFallback(t *testing.T) {
	tc := newTestCore(t)
	tc.handler.refuse = true

	tc.typeKeys(keys.H, keys.I)

	assert.Equal(t, []keys.KeyStroke{stroke(keys.H), stroke(keys.I)}, tc.injector.strokes)
}

func TestNoInjectorDoesNotPanic(t *testing.T) {
	tc := newTestCore(t)
	tc.handler.refuse = true
	tc.Injector = nil

	assert.NotPanics(t, func() { tc.typeKeys(keys.H, keys.Space) })
	assert.Equal(t, []string{"h"}, tc.speaker.spoken)
}

func TestUnmappedKeyIsSwallowed(t *testing.T) {
	tc := newTestCore(t)

	assert.True(t, tc.OnKeyEvent(keys.Event{Key: keys.F7, Type: keys.KeyDown}))
	assert.True(t, tc.OnKeyEvent(keys.Event{Key: keys.F7, Type: keys.KeyUp}))
	assert.Empty(t, tc.handler.sent)
	assert.Empty(t, tc.buffers.word)
}

func TestLetterSounds(t *testing.T) {
	tc := newTestCore(t)

	tc.typeKeys(keys.H, keys.I)
	assert.Equal(t, []string{"h.wav"}, tc.sounds.played)

	tc.settings.letters = false
	tc.typeKeys(keys.H)
	assert.Equal(t, []string{"h.wav"}, tc.sounds.played)
}

func TestDisabledPassesThrough(t *testing.T) {
	tc := newTestCore(t)
	tc.settings.enabled = false

	assert.False(t, tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyDown}))
	assert.False(t, tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyUp}))
	assert.Empty(t, tc.handler.sent)
	assert.Empty(t, tc.buffers.word)
}

func TestRequireKeyboard(t *testing.T) {
	tc := newTestCore(t)
	tc.settings.requireKeyboard = true

	assert.False(t, tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyDown}))
	assert.Empty(t, tc.handler.sent)

	tc.OnDevicePresenceChanged(true)
	assert.True(t, tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyDown}))
	assert.Len(t, tc.handler.sent, 2)

	tc.OnDevicePresenceChanged(false)
	assert.False(t, tc.OnKeyEvent(keys.Event{Key: keys.H, Type: keys.KeyUp}))
}

func TestSelectionReadOut(t *testing.T) {
	tc := newTestCore(t)
	tc.clipboard.text = "selected text"

	assert.True(t, tc.OnKeyEvent(keys.Event{Key: keys.WinCmd, Type: keys.KeyDown}))

	assert.Equal(t, []keys.KeyStroke{{Key: keys.C, Ctrl: true}}, tc.injector.strokes)
	assert.Equal(t, []string{"selected text"}, tc.speaker.spoken)
	assert.Equal(t, []float32{0.25}, tc.speaker.speeds)
}

func TestSelectionDisabled(t *testing.T) {
	tc := newTestCore(t)
	tc.settings.selection = false
	tc.clipboard.text = "selected text"

	tc.OnKeyEvent(keys.Event{Key: keys.WinCmd, Type: keys.KeyDown})

	assert.Empty(t, tc.injector.strokes)
	assert.Empty(t, tc.speaker.spoken)
}

func TestSelectionClipboardError(t *testing.T) {
	tc := newTestCore(t)
	tc.clipboard.err = errStoreDown

	assert.True(t, tc.OnKeyEvent(keys.Event{Key: keys.WinCmd, Type: keys.KeyDown}))
	assert.Empty(t, tc.speaker.spoken)
}

func TestConnectCues(t *testing.T) {
	tc := newTestCore(t)
	assert.False(t, tc.KeyboardConnected())

	tc.OnDevicePresenceChanged(true)
	assert.True(t, tc.KeyboardConnected())
	assert.Equal(t, 1, tc.notifier.connected)

	tc.OnDevicePresenceChanged(false)
	assert.False(t, tc.KeyboardConnected())
	assert.Equal(t, 1, tc.notifier.disconnected)

	assert.Equal(t, []string{ConnectSound, DisconnectSound}, tc.sounds.played)
}
