package textlayout

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16UnitsForByteOffset converts a byte offset in a UTF-8 string to
// the number of UTF-16 code units preceding it. Only characters fully
// contained below the byte offset count, so an offset inside a
// multi-byte character maps to the character's start.
func UTF16UnitsForByteOffset(text string, byteOffset int) int {
	units := 0
	for i, r := range text {
		if i+utf8.RuneLen(r) > byteOffset {
			break
		}
		units += utf16.RuneLen(r)
	}
	return units
}

// ByteOffsetForUTF16Units converts a UTF-16 code unit count back to a
// byte offset. Counts exceeding the text map to its end; a count
// landing inside a surrogate pair advances to the following character
// boundary, so the result never splits a code point.
func ByteOffsetForUTF16Units(text string, units int) int {
	if units <= 0 {
		return 0
	}
	consumed := 0
	for i, r := range text {
		if consumed >= units {
			return i
		}
		consumed += utf16.RuneLen(r)
	}
	return len(text)
}
