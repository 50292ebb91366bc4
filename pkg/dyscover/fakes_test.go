package dyscover

import (
	"codeberg.org/miketth/dyscover/pkg/keyboard"
	"codeberg.org/miketth/dyscover/pkg/keys"
	"errors"
	"sync"
)

type fakeSettings struct {
	enabled, words, sentences, selection, letters bool
	speed                                         float32
	layout                                        string
	accumulateDown, requireKeyboard               bool
}

func defaultSettings() *fakeSettings {
	return &fakeSettings{
		enabled:   true,
		words:     true,
		sentences: true,
		selection: true,
		letters:   true,
		speed:     0.25,
	}
}

func (f *fakeSettings) Enabled() bool             { return f.enabled }
func (f *fakeSettings) Words() bool               { return f.words }
func (f *fakeSettings) Sentences() bool           { return f.sentences }
func (f *fakeSettings) Selection() bool           { return f.selection }
func (f *fakeSettings) Letters() bool             { return f.letters }
func (f *fakeSettings) Speed() float32            { return f.speed }
func (f *fakeSettings) Layout() string            { return f.layout }
func (f *fakeSettings) AccumulateOnKeyDown() bool { return f.accumulateDown }
func (f *fakeSettings) RequireKeyboard() bool     { return f.requireKeyboard }

type fakeSpeaker struct {
	spoken []string
	speeds []float32
	stops  int
}

func (f *fakeSpeaker) Speak(text string) { f.spoken = append(f.spoken, text) }
func (f *fakeSpeaker) Stop()             { f.stops++ }
func (f *fakeSpeaker) SetSpeed(speed float32) error {
	f.speeds = append(f.speeds, speed)
	return nil
}

type fakeSounds struct {
	played []string
}

func (f *fakeSounds) PlaySoundFile(name string) { f.played = append(f.played, name) }

type sentKey struct {
	key keys.Key
	typ keys.EventType
}

type fakeHandler struct {
	refuse bool
	sent   []sentKey
}

func (f *fakeHandler) Translate(key keys.Key, mods keys.Modifiers) string {
	return keyboard.TranslateUS(key, mods)
}

func (f *fakeHandler) SendKey(key keys.Key, eventType keys.EventType) bool {
	if f.refuse {
		return false
	}
	f.sent = append(f.sent, sentKey{key, eventType})
	return true
}

type fakeInjector struct {
	strokes []keys.KeyStroke
}

func (f *fakeInjector) SendKeyStroke(stroke keys.KeyStroke) error {
	f.strokes = append(f.strokes, stroke)
	return nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.text, f.err }

type fakeNotifier struct {
	connected, disconnected int
}

func (f *fakeNotifier) OnKeyboardConnected()    { f.connected++ }
func (f *fakeNotifier) OnKeyboardDisconnected() { f.disconnected++ }

var errStoreDown = errors.New("store down")

type fakeStore struct {
	mu     sync.Mutex
	name   string
	err    error
	writes []string
}

func (f *fakeStore) GetActiveLayout() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name, f.err
}

func (f *fakeStore) SetActiveLayout(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = name
	f.writes = append(f.writes, name)
	return nil
}

func (f *fakeStore) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}
