package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"github.com/holoplot/go-evdev"
)

var evdevCodes = map[keys.Key]evdev.EvCode{
	keys.Esc:          evdev.KEY_ESC,
	keys.CapsLock:     evdev.KEY_CAPSLOCK,
	keys.Up:           evdev.KEY_UP,
	keys.Down:         evdev.KEY_DOWN,
	keys.Left:         evdev.KEY_LEFT,
	keys.Right:        evdev.KEY_RIGHT,
	keys.Backspace:    evdev.KEY_BACKSPACE,
	keys.Space:        evdev.KEY_SPACE,
	keys.Enter:        evdev.KEY_ENTER,
	keys.Tab:          evdev.KEY_TAB,
	keys.Dot:          evdev.KEY_DOT,
	keys.Comma:        evdev.KEY_COMMA,
	keys.One:          evdev.KEY_1,
	keys.Two:          evdev.KEY_2,
	keys.Three:        evdev.KEY_3,
	keys.Four:         evdev.KEY_4,
	keys.Five:         evdev.KEY_5,
	keys.Six:          evdev.KEY_6,
	keys.Seven:        evdev.KEY_7,
	keys.Eight:        evdev.KEY_8,
	keys.Nine:         evdev.KEY_9,
	keys.Zero:         evdev.KEY_0,
	keys.OpenBracket:  evdev.KEY_LEFTBRACE,
	keys.CloseBracket: evdev.KEY_RIGHTBRACE,
	keys.Semicolon:    evdev.KEY_SEMICOLON,
	keys.Apostrophe:   evdev.KEY_APOSTROPHE,
	keys.Backslash:    evdev.KEY_BACKSLASH,
	keys.Minus:        evdev.KEY_MINUS,
	keys.Slash:        evdev.KEY_SLASH,
	keys.Equal:        evdev.KEY_EQUAL,
	keys.Backtick:     evdev.KEY_GRAVE,
	keys.Ins:          evdev.KEY_INSERT,
	keys.Del:          evdev.KEY_DELETE,
	keys.Home:         evdev.KEY_HOME,
	keys.End:          evdev.KEY_END,
	keys.PageUp:       evdev.KEY_PAGEUP,
	keys.PageDown:     evdev.KEY_PAGEDOWN,
	keys.A:            evdev.KEY_A,
	keys.B:            evdev.KEY_B,
	keys.C:            evdev.KEY_C,
	keys.D:            evdev.KEY_D,
	keys.E:            evdev.KEY_E,
	keys.F:            evdev.KEY_F,
	keys.G:            evdev.KEY_G,
	keys.H:            evdev.KEY_H,
	keys.I:            evdev.KEY_I,
	keys.J:            evdev.KEY_J,
	keys.K:            evdev.KEY_K,
	keys.L:            evdev.KEY_L,
	keys.M:            evdev.KEY_M,
	keys.N:            evdev.KEY_N,
	keys.O:            evdev.KEY_O,
	keys.P:            evdev.KEY_P,
	keys.Q:            evdev.KEY_Q,
	keys.R:            evdev.KEY_R,
	keys.S:            evdev.KEY_S,
	keys.T:            evdev.KEY_T,
	keys.U:            evdev.KEY_U,
	keys.V:            evdev.KEY_V,
	keys.W:            evdev.KEY_W,
	keys.X:            evdev.KEY_X,
	keys.Y:            evdev.KEY_Y,
	keys.Z:            evdev.KEY_Z,
	keys.F1:           evdev.KEY_F1,
	keys.F2:           evdev.KEY_F2,
	keys.F3:           evdev.KEY_F3,
	keys.F4:           evdev.KEY_F4,
	keys.F5:           evdev.KEY_F5,
	keys.F6:           evdev.KEY_F6,
	keys.F7:           evdev.KEY_F7,
	keys.F8:           evdev.KEY_F8,
	keys.F9:           evdev.KEY_F9,
	keys.F10:          evdev.KEY_F10,
	keys.F11:          evdev.KEY_F11,
	keys.F12:          evdev.KEY_F12,
	keys.Shift:        evdev.KEY_LEFTSHIFT,
	keys.Ctrl:         evdev.KEY_LEFTCTRL,
	keys.Alt:          evdev.KEY_LEFTALT,
	keys.AltGr:        evdev.KEY_RIGHTALT,
	keys.WinCmd:       evdev.KEY_LEFTMETA,
}

var keysByCode = func() map[evdev.EvCode]keys.Key {
	m := make(map[evdev.EvCode]keys.Key, len(evdevCodes)+3)
	for k, code := range evdevCodes {
		m[code] = k
	}
	m[evdev.KEY_RIGHTSHIFT] = keys.Shift
	m[evdev.KEY_RIGHTCTRL] = keys.Ctrl
	m[evdev.KEY_RIGHTMETA] = keys.WinCmd
	return m
}()

func codeForKey(k keys.Key) (evdev.EvCode, bool) {
	code, ok := evdevCodes[k]
	return code, ok
}

func keyForCode(code evdev.EvCode) keys.Key {
	return keysByCode[code]
}
