package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestTranslateUSLetters(t *testing.T) {
	assert.Equal(t, "a", TranslateUS(keys.A, keys.Modifiers{}))
	assert.Equal(t, "A", TranslateUS(keys.A, keys.Modifiers{Shift: true}))
	assert.Equal(t, "z", TranslateUS(keys.Z, keys.Modifiers{}))
}

func TestTranslateUSChords(t *testing.T) {
	assert.Equal(t, "", TranslateUS(keys.C, keys.Modifiers{Ctrl: true}))
	assert.Equal(t, "", TranslateUS(keys.Q, keys.Modifiers{Shift: true, Alt: true}))
	assert.Equal(t, "", TranslateUS(keys.E, keys.Modifiers{AltGr: true}))
}

func TestTranslateUSPrintableCoverage(t *testing.T) {
	cases := []struct {
		key            keys.Key
		plain, shifted string
	}{
		{keys.One, "1", "!"},
		{keys.Two, "2", "@"},
		{keys.Three, "3", "#"},
		{keys.Four, "4", "$"},
		{keys.Five, "5", "%"},
		{keys.Six, "6", "^"},
		{keys.Seven, "7", "&"},
		{keys.Eight, "8", "*"},
		{keys.Nine, "9", "("},
		{keys.Zero, "0", ")"},
		{keys.Minus, "-", "_"},
		{keys.Equal, "=", "+"},
		{keys.OpenBracket, "[", "{"},
		{keys.CloseBracket, "]", "}"},
		{keys.Backslash, `\`, "|"},
		{keys.Semicolon, ";", ":"},
		{keys.Apostrophe, "'", `"`},
		{keys.Comma, ",", "<"},
		{keys.Dot, ".", ">"},
		{keys.Slash, "/", "?"},
		{keys.Backtick, "`", "~"},
		{keys.Space, " ", " "},
	}
	for _, c := range cases {
		assert.Equal(t, c.plain, TranslateUS(c.key, keys.Modifiers{}), c.key.String())
		assert.Equal(t, c.shifted, TranslateUS(c.key, keys.Modifiers{Shift: true}), c.key.String())
	}
}

func TestTranslateUSNonPrintable(t *testing.T) {
	for _, k := range []keys.Key{keys.Esc, keys.Enter, keys.Tab, keys.Backspace, keys.F4, keys.Shift, keys.Unknown} {
		assert.Equal(t, "", TranslateUS(k, keys.Modifiers{}), k.String())
	}
}
