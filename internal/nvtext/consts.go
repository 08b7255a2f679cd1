// Package nvtext converts NVRAM variables to and from their one-line text
// form, partition:name=value, with values percent-escaped.
package nvtext

const (
	// EscapeChar introduces a two-digit hex escape in value text.
	EscapeChar = '%'
	// PartitionSeparator divides the partition from the variable name.
	PartitionSeparator = ":"
	// ValueSeparator divides a reference from its value in write tokens.
	ValueSeparator = "="

	hexDigits = "0123456789abcdef"

	// printable ASCII range emitted literally by Encode.
	printableFirst = 0x20
	printableLast  = 0x7E
)
