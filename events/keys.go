package events

import "unicode"

// Key is a host keyboard key code. The values follow the GLFW key
// space, where printable keys carry their ASCII value.
type Key int

const (
	KeyUnknown Key = -1

	KeySpace      Key = 32
	KeyApostrophe Key = 39
	KeyComma      Key = 44
	KeyMinus      Key = 45
	KeyPeriod     Key = 46
	KeySlash      Key = 47
	Key0          Key = 48
	Key9          Key = 57
	KeySemicolon  Key = 59
	KeyEqual      Key = 61
	KeyA          Key = 65
	KeyZ          Key = 90
	KeyBracketL   Key = 91
	KeyBackslash  Key = 92
	KeyBracketR   Key = 93
	KeyGrave      Key = 96

	KeyEscape    Key = 256
	KeyEnter     Key = 257
	KeyTab       Key = 258
	KeyBackspace Key = 259
	KeyInsert    Key = 260
	KeyDelete    Key = 261
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyPageUp    Key = 266
	KeyPageDown  Key = 267
	KeyHome      Key = 268
	KeyEnd       Key = 269
	KeyF1        Key = 290
	KeyF12       Key = 301
)

// specialKeyText maps non-printable keys to the runtime's canonical
// textual representation. Navigation keys use the private-use-area
// code points the runtime assigns to them.
var specialKeyText = map[Key]string{
	KeyEscape:    "",
	KeyEnter:     "\n",
	KeyTab:       "\t",
	KeyBackspace: "",
	KeyDelete:    "",
	KeyUp:        "",
	KeyDown:      "",
	KeyLeft:      "",
	KeyRight:     "",
	KeyInsert:    "",
	KeyHome:      "",
	KeyEnd:       "",
	KeyPageUp:    "",
	KeyPageDown:  "",
}

func init() {
	for f := KeyF1; f <= KeyF12; f++ {
		specialKeyText[f] = string(rune(0xf704 + int(f-KeyF1)))
	}
}

// KeyText resolves the text carried by a key event. Special keys win
// over everything; otherwise the host-provided text is used when it is
// non-empty and free of control characters; printable key codes fall
// back to their ASCII value with letters lowercased.
func KeyText(code Key, hostText string) string {
	if text, ok := specialKeyText[code]; ok {
		return text
	}
	if hostText != "" && !containsControl(hostText) {
		return hostText
	}
	if code >= KeySpace && code <= KeyGrave {
		return string(unicode.ToLower(rune(code)))
	}
	return ""
}

func containsControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
