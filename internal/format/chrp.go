package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/nvramkit/internal/buf"
)

// CHRPHeader is the decoded form of an Open Firmware partition header.
type CHRPHeader struct {
	Signature byte
	Checksum  byte
	Blocks    uint16 // length in CHRPBlockSize units, header included
	Name      []byte // name without zero padding
}

// Size returns the byte length described by the header.
func (h CHRPHeader) Size() int {
	return int(h.Blocks) * CHRPBlockSize
}

// ParseCHRPHeader decodes and validates the header at the start of b.
func ParseCHRPHeader(b []byte) (CHRPHeader, error) {
	raw, ok := buf.Slice(b, 0, CHRPHeaderSize)
	if !ok {
		return CHRPHeader{}, fmt.Errorf("chrp header: %w", ErrTruncated)
	}
	if sum := CHRPChecksum(raw); sum != raw[CHRPChecksumOffset] {
		return CHRPHeader{}, fmt.Errorf("chrp header: stored 0x%02x, computed 0x%02x: %w",
			raw[CHRPChecksumOffset], sum, ErrChecksum)
	}
	name := raw[CHRPNameOffset : CHRPNameOffset+CHRPNameSize]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return CHRPHeader{
		Signature: raw[CHRPSignatureOffset],
		Checksum:  raw[CHRPChecksumOffset],
		Blocks:    buf.U16LE(raw[CHRPLengthOffset:]),
		Name:      append([]byte(nil), name...),
	}, nil
}

// Expect checks the header's signature and name.
func (h CHRPHeader) Expect(sig byte, name []byte) error {
	if h.Signature != sig || !bytes.Equal(h.Name, name) {
		return fmt.Errorf("chrp header %q/0x%02x, want %q/0x%02x: %w",
			h.Name, h.Signature, name, sig, ErrSignatureMismatch)
	}
	return nil
}

// PutCHRPHeader encodes a header describing size bytes into dst, computing
// its checksum. size must be a multiple of CHRPBlockSize.
func PutCHRPHeader(dst []byte, sig byte, name []byte, size int) error {
	if len(dst) < CHRPHeaderSize {
		return fmt.Errorf("chrp header: %w", ErrTruncated)
	}
	if len(name) > CHRPNameSize {
		return fmt.Errorf("chrp name %q: %w", name, ErrTooLarge)
	}
	if size%CHRPBlockSize != 0 || size/CHRPBlockSize > CHRPMaxBlocks {
		return fmt.Errorf("chrp length %d: %w", size, ErrTooLarge)
	}
	hdr := dst[:CHRPHeaderSize]
	clear(hdr)
	hdr[CHRPSignatureOffset] = sig
	buf.PutU16LE(hdr[CHRPLengthOffset:], uint16(size/CHRPBlockSize))
	copy(hdr[CHRPNameOffset:], name)
	hdr[CHRPChecksumOffset] = CHRPChecksum(hdr)
	return nil
}

// CHRPChecksum computes the header checksum: the signature byte plus the
// fourteen bytes after the checksum field, summed with end-around carry.
func CHRPChecksum(hdr []byte) byte {
	if len(hdr) < CHRPHeaderSize {
		return 0
	}
	sum := hdr[CHRPSignatureOffset]
	for _, b := range hdr[CHRPLengthOffset:CHRPHeaderSize] {
		next := sum + b
		if next < sum {
			next++
		}
		sum = next
	}
	return sum
}
