package dyscover

import (
	"codeberg.org/miketth/dyscover/pkg/keyboard"
	"codeberg.org/miketth/dyscover/pkg/keys"
	"codeberg.org/miketth/dyscover/pkg/layouts"
	"go.uber.org/zap"
	"sync"
	"sync/atomic"
	"time"
)

const (
	ConnectSound    = "dyscover_connect_positive_with_voice.wav"
	DisconnectSound = "dyscover_connect_negative_with_voice.wav"

	// clipboardDelay is how long the focused application gets to serve Ctrl+C.
	clipboardDelay = 25 * time.Millisecond
)

type Deps struct {
	Settings   Settings
	Translator Translator
	Handler    KeyHandler
	// Injector may be nil when no legacy injection path exists.
	Injector  Injector
	Speaker   Speaker
	Sounds    SoundPlayer
	Clipboard Clipboard
	Notifier  Notifier
}

// Core turns physical key events into injected keystrokes, sound cues and speech.
type Core struct {
	Deps
	log *zap.SugaredLogger

	connected atomic.Bool

	mu      sync.Mutex
	buffers speechBuffers

	copyDelay time.Duration
}

func NewCore(deps Deps, log *zap.SugaredLogger) *Core {
	return &Core{
		Deps:      deps,
		log:       log,
		copyDelay: clipboardDelay,
	}
}

func (c *Core) KeyboardConnected() bool {
	return c.connected.Load()
}

// OnKeyEvent handles one physical key event and reports whether it was
// consumed. Events must be delivered one at a time in their original order.
func (c *Core) OnKeyEvent(ev keys.Event) bool {
	if c.Settings.RequireKeyboard() && !c.connected.Load() {
		return false
	}
	if !c.Settings.Enabled() {
		c.log.Debugw("event passed through, disabled", "key", ev.Key)
		return false
	}

	if ev.Key == keys.WinCmd && ev.Type == keys.KeyDown && c.Settings.Selection() {
		c.readSelection()
		return true
	}

	mods := ev.Modifiers
	action := c.Translator.Translate(ev.Key, ev.CapsLock, mods.Shift, mods.Ctrl, mods.Alt)

	accumulateOn := keys.KeyUp
	if c.Settings.AccumulateOnKeyDown() {
		accumulateOn = keys.KeyDown
	}

	if ev.Type == keys.KeyDown {
		c.inject(action.Keystrokes)
		if c.Settings.Letters() && action.Sound != "" {
			c.Sounds.PlaySoundFile(action.Sound)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ev.Type == keys.KeyUp {
		if c.speechTransition(ev.Key, action) {
			return true
		}
	}

	if ev.Type == accumulateOn && !isBoundary(ev.Key, action) {
		if text := c.text(action.Keystrokes); text != "" {
			c.buffers.append(text)
			c.log.Debugw("accumulated", "text", text, "word", string(c.buffers.word))
		}
	}

	return true
}

func isBoundary(key keys.Key, action layouts.Action) bool {
	switch key {
	case keys.Space, keys.Tab, keys.Enter, keys.Esc, keys.Backspace:
		return true
	}
	return action.EndsSentence
}

// speechTransition applies the key-up buffer transitions and reports whether
// the key was a boundary.
func (c *Core) speechTransition(key keys.Key, action layouts.Action) bool {
	switch {
	case key == keys.Space || key == keys.Tab || key == keys.Enter:
		word := c.buffers.wordBoundary()
		if word != "" && c.Settings.Words() {
			c.speak(word)
		}
	case action.EndsSentence:
		word, sentence := c.buffers.sentenceBoundary()
		if word != "" && c.Settings.Words() {
			c.speak(word)
		}
		if sentence != "" && c.Settings.Sentences() {
			c.speak(sentence)
		}
	case key == keys.Esc:
		c.log.Debug("stopping speech")
		c.Speaker.Stop()
	case key == keys.Backspace:
		c.buffers.backspace()
	default:
		return false
	}
	return true
}

func (c *Core) speak(text string) {
	if err := c.Speaker.SetSpeed(c.Settings.Speed()); err != nil {
		c.log.Debugw("set speech speed", "error", err)
	}
	c.log.Debugw("speaking", "text", text)
	c.Speaker.Speak(text)
}

// text renders the keystrokes as the host would type them.
func (c *Core) text(strokes []keys.KeyStroke) string {
	var out []byte
	for _, ks := range strokes {
		chars := c.Handler.Translate(ks.Key, keys.Modifiers{Shift: ks.Shift, Ctrl: ks.Ctrl, Alt: ks.Alt})
		if chars == "" {
			chars = legacyText(ks)
		}
		out = append(out, chars...)
	}
	return string(out)
}

// inject types each keystroke through the platform handler when it can take
// it, otherwise through the legacy injector.
func (c *Core) inject(strokes []keys.KeyStroke) {
	for _, ks := range strokes {
		if !ks.HasModifiers() && c.Handler.SendKey(ks.Key, keys.KeyDown) {
			c.Handler.SendKey(ks.Key, keys.KeyUp)
			continue
		}

		if c.Injector == nil {
			c.log.Debugw("no injection path for keystroke", "stroke", ks)
			continue
		}
		if err := c.Injector.SendKeyStroke(ks); err != nil {
			c.log.Warnw("inject keystroke", "stroke", ks, "error", err)
		}
	}
}

func (c *Core) readSelection() {
	if c.Injector != nil {
		if err := c.Injector.SendKeyStroke(keys.KeyStroke{Key: keys.C, Ctrl: true}); err != nil {
			c.log.Warnw("copy selection", "error", err)
		}
	}

	time.Sleep(c.copyDelay)

	text, err := c.Clipboard.ReadAll()
	if err != nil {
		c.log.Debugw("read clipboard", "error", err)
		return
	}

	c.speak(text)
}

// OnDevicePresenceChanged is the device detector listener.
func (c *Core) OnDevicePresenceChanged(present bool) {
	if present {
		c.OnKeyboardConnected()
	} else {
		c.OnKeyboardDisconnected()
	}
}

func (c *Core) OnKeyboardConnected() {
	c.log.Info("keyboard connected")
	c.Sounds.PlaySoundFile(ConnectSound)
	c.connected.Store(true)
	c.Notifier.OnKeyboardConnected()
}

func (c *Core) OnKeyboardDisconnected() {
	c.log.Info("keyboard disconnected")
	c.Sounds.PlaySoundFile(DisconnectSound)
	c.connected.Store(false)
	c.Notifier.OnKeyboardDisconnected()
}

// legacyText is the built-in rendering used when the host handler yields nothing.
func legacyText(ks keys.KeyStroke) string {
	if ks.Ctrl || ks.Alt {
		return ""
	}
	return keyboard.TranslateUS(ks.Key, keys.Modifiers{Shift: ks.Shift})
}
