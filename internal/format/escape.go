package format

// UnescapeValue expands the run-length escapes of a stored value. A trailing
// escape byte with no count is kept literally.
func UnescapeValue(stored []byte) []byte {
	out := make([]byte, 0, len(stored))
	for i := 0; i < len(stored); i++ {
		c := stored[i]
		if c != EscapeByte || i+1 >= len(stored) {
			out = append(out, c)
			continue
		}
		i++
		n := stored[i]
		fill := byte(0x00)
		if n&EscapeRunFF != 0 {
			fill = 0xFF
		}
		for range int(n & EscapeMaxRun) {
			out = append(out, fill)
		}
	}
	return out
}

// EscapeValue encodes runs of 0x00 and 0xFF so the stored value contains no
// entry terminator. Runs longer than EscapeMaxRun are split.
func EscapeValue(value []byte) []byte {
	out := make([]byte, 0, len(value))
	for i := 0; i < len(value); {
		c := value[i]
		if c != 0x00 && c != 0xFF {
			out = append(out, c)
			i++
			continue
		}
		run := 1
		for i+run < len(value) && value[i+run] == c && run < EscapeMaxRun {
			run++
		}
		count := byte(run)
		if c == 0xFF {
			count |= EscapeRunFF
		}
		out = append(out, EscapeByte, count)
		i += run
	}
	return out
}
