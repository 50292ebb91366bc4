package keyboard

import "codeberg.org/miketth/dyscover/pkg/keys"

var shiftedDigits = map[keys.Key][2]string{
	keys.One:   {"1", "!"},
	keys.Two:   {"2", "@"},
	keys.Three: {"3", "#"},
	keys.Four:  {"4", "$"},
	keys.Five:  {"5", "%"},
	keys.Six:   {"6", "^"},
	keys.Seven: {"7", "&"},
	keys.Eight: {"8", "*"},
	keys.Nine:  {"9", "("},
	keys.Zero:  {"0", ")"},

	keys.Minus:        {"-", "_"},
	keys.Equal:        {"=", "+"},
	keys.OpenBracket:  {"[", "{"},
	keys.CloseBracket: {"]", "}"},
	keys.Backslash:    {`\`, "|"},
	keys.Semicolon:    {";", ":"},
	keys.Apostrophe:   {"'", `"`},
	keys.Comma:        {",", "<"},
	keys.Dot:          {".", ">"},
	keys.Slash:        {"/", "?"},
	keys.Backtick:     {"`", "~"},
}

// TranslateUS renders a key as a US keyboard would type it. Keys that type
// nothing, and chords with Ctrl, Alt or AltGr, return "".
func TranslateUS(key keys.Key, mods keys.Modifiers) string {
	if mods.Ctrl || mods.Alt || mods.AltGr {
		return ""
	}

	if key >= keys.A && key <= keys.Z {
		base := 'a'
		if mods.Shift {
			base = 'A'
		}
		return string(base + rune(key-keys.A))
	}

	if pair, ok := shiftedDigits[key]; ok {
		if mods.Shift {
			return pair[1]
		}
		return pair[0]
	}

	if key == keys.Space {
		return " "
	}

	return ""
}
