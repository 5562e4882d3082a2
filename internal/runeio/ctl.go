package runeio

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ControlRune represents a named control unicode codepoint.
type ControlRune struct {
	N string
	R rune
}

// C0Ctls contains the classic ASCII control characters.
var C0Ctls = [32]ControlRune{
	{"<NUL>", 0x00}, {"<SOH>", 0x01}, {"<STX>", 0x02}, {"<ETX>", 0x03},
	{"<EOT>", 0x04}, {"<ENQ>", 0x05}, {"<ACK>", 0x06}, {"<BEL>", 0x07},
	{"<BS>", 0x08}, {"<HT>", 0x09}, {"<NL>", 0x0A}, {"<VT>", 0x0B},
	{"<NP>", 0x0C}, {"<CR>", 0x0D}, {"<SO>", 0x0E}, {"<SI>", 0x0F},
	{"<DLE>", 0x10}, {"<DC1>", 0x11}, {"<DC2>", 0x12}, {"<DC3>", 0x13},
	{"<DC4>", 0x14}, {"<NAK>", 0x15}, {"<SYN>", 0x16}, {"<ETB>", 0x17},
	{"<CAN>", 0x18}, {"<EM>", 0x19}, {"<SUB>", 0x1A}, {"<ESC>", 0x1B},
	{"<FS>", 0x1C}, {"<GS>", 0x1D}, {"<RS>", 0x1E}, {"<US>", 0x1F},
}

// PseudoCtls provides the typical mnemonics for space and delete.
var PseudoCtls = [2]ControlRune{
	{"<SP>", 0x20},
	{"<DEL>", 0x7F},
}

// ControlWords maps lower case control mnemonics, and their caret forms like
// ^[ for <ESC>, to runes. Keys are lower case since source tokens are folded.
var ControlWords map[string]rune

func init() {
	ControlWords = make(map[string]rune, 2*(len(C0Ctls)+len(PseudoCtls)))
	for _, ctls := range [][]ControlRune{C0Ctls[:], PseudoCtls[:]} {
		for _, ctl := range ctls {
			ControlWords[strings.ToLower(ctl.N)] = ctl.R
			if caret := CaretForm(ctl.R); caret != "" {
				ControlWords[strings.ToLower(caret)] = ctl.R
			}
		}
	}
}

// CaretForm computes the ^-escaped printable form of a C0 control rune.
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	}
	return ""
}

var errEmptyChar = errors.New("empty character token")

// ParseChar resolves a character token: a control mnemonic like <esc>, a
// caret form like ^[, a quoted literal like 'a' or '\n', or else simply the
// first rune of the token.
func ParseChar(token string) (rune, error) {
	if token == "" {
		return 0, errEmptyChar
	}
	if r, defined := ControlWords[strings.ToLower(token)]; defined {
		return r, nil
	}
	if n := len(token); n >= 3 && token[0] == '\'' && token[n-1] == '\'' {
		value, _, tail, err := strconv.UnquoteChar(token[1:n-1], '\'')
		if err == nil && tail == "" {
			return value, nil
		}
	}
	r, _ := utf8.DecodeRuneInString(token)
	return r, nil
}
