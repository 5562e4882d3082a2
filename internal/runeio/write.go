package runeio

import (
	"io"
	"unicode/utf8"
)

// AppendANSI appends the terminal encoding of r to buf. ASCII passes through
// as a single byte; NEL becomes "\r\n"; other C1 controls take their 7-bit
// escape form, so "\x9b" is written as ESC [; everything else is UTF-8.
func AppendANSI(buf []byte, r rune) []byte {
	switch {
	case r < utf8.RuneSelf:
		return append(buf, byte(r))
	case r == 0x85:
		return append(buf, '\r', '\n')
	case r <= 0x9f:
		return append(buf, 0x1b, byte(r^0xc0))
	}
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	return append(buf, enc[:n]...)
}

// WriteANSIRune writes the AppendANSI encoding of r to w.
func WriteANSIRune(w io.Writer, r rune) (int, error) {
	var tmp [utf8.UTFMax]byte
	return w.Write(AppendANSI(tmp[:0], r))
}

// WriteANSIString writes the AppendANSI encoding of s to w with one call.
func WriteANSIString(w io.Writer, s string) (int, error) {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		buf = AppendANSI(buf, r)
	}
	return w.Write(buf)
}
