package nvtext

import (
	"strings"

	"github.com/joshuapare/nvramkit/pkg/types"
)

// Encode renders value as printable ASCII. Bytes outside 0x20..0x7E, and the
// escape character itself, become %xx with lowercase hex digits.
func Encode(value []byte) string {
	var sb strings.Builder
	sb.Grow(len(value))
	for _, c := range value {
		if c >= printableFirst && c <= printableLast && c != EscapeChar {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte(EscapeChar)
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0x0F])
	}
	return sb.String()
}

// Decode reverses Encode and accepts hand-written text: every %XX (either
// case) becomes one byte, anything else is copied through.
func Decode(text string) ([]byte, error) {
	// Fast path: nothing to unescape.
	if strings.IndexByte(text, EscapeChar) == -1 {
		return []byte(text), nil
	}
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != EscapeChar {
			out = append(out, c)
			continue
		}
		if i+2 >= len(text) {
			return nil, types.Newf(types.ErrKindInvalidHex, "truncated escape at offset %d in %q", i, text)
		}
		hi, okHi := unhex(text[i+1])
		lo, okLo := unhex(text[i+2])
		if !okHi || !okLo {
			return nil, types.Newf(types.ErrKindInvalidHex, "invalid escape %q at offset %d", text[i:i+3], i)
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	return out, nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
