package nvtext

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/joshuapare/nvramkit/pkg/types"
)

// Ref is a parsed partition:name token.
type Ref struct {
	Partition string
	Name      []byte
}

// Assignment is a parsed partition:name=value token. Value is still
// percent-encoded.
type Assignment struct {
	Ref
	Value string
}

// ParseRef splits a read or delete token on its first ':'.
func ParseRef(token string) (Ref, error) {
	part, name, ok := strings.Cut(token, PartitionSeparator)
	if !ok {
		return Ref{}, types.Newf(types.ErrKindMissingPartitionName, "missing partition name in %q", token)
	}
	return Ref{Partition: part, Name: []byte(name)}, nil
}

// ParseAssignment splits a write token on its first '=' and then the key on
// its first ':'.
func ParseAssignment(token string) (Assignment, error) {
	key, value, ok := strings.Cut(token, ValueSeparator)
	if !ok {
		return Assignment{}, types.Newf(types.ErrKindMissingValue, "missing value in %q", token)
	}
	ref, err := ParseRef(key)
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{Ref: ref, Value: value}, nil
}

// FormatLine renders one variable as partition:key=value.
func FormatLine(partition string, key, value []byte) string {
	return partition + PartitionSeparator + RenderKey(key) + ValueSeparator + Encode(value)
}

// RenderKey converts a key to text, replacing ill-formed UTF-8 with U+FFFD.
func RenderKey(key []byte) string {
	s, _, err := transform.String(runes.ReplaceIllFormed(), string(key))
	if err != nil {
		return strings.ToValidUTF8(string(key), "�")
	}
	return s
}
