package nvram

import (
	"bytes"
	"hash/adler32"

	"github.com/joshuapare/nvramkit/internal/buf"
	"github.com/joshuapare/nvramkit/internal/format"
	"github.com/joshuapare/nvramkit/pkg/types"
)

// Partition is one of the two redundant copies of the variable store.
type Partition struct {
	Generation uint32
	Common     *Section
	System     *Section

	// raw is the partition as read from the device. Bytes past the system
	// section are carried through serialization unchanged.
	raw []byte
}

// Size returns the partition length in bytes.
func (p *Partition) Size() int { return len(p.raw) }

// Section returns the section for the given partition name, or nil.
func (p *Partition) Section(name types.PartitionName) *Section {
	switch name {
	case types.PartitionCommon:
		return p.Common
	case types.PartitionSystem:
		return p.System
	default:
		return nil
	}
}

func parsePartition(data []byte) (*Partition, error) {
	if len(data) < format.MinPartitionSize {
		return nil, types.Newf(types.ErrKindParse, "partition: %d bytes, need at least %d", len(data), format.MinPartitionSize)
	}
	hdr, err := format.ParseCHRPHeader(data)
	if err != nil {
		return nil, types.Wrap(types.ErrKindParse, "partition header", err)
	}
	if err := hdr.Expect(format.PartitionSignature, format.PartitionName); err != nil {
		return nil, types.Wrap(types.ErrKindParse, "partition header", err)
	}
	stored := buf.U32LE(data[format.PartitionAdlerOffset:])
	if sum := adler32.Checksum(data[format.PartitionChecksumStart:]); sum != stored {
		return nil, types.Newf(types.ErrKindParse, "partition adler32: stored 0x%08x, computed 0x%08x", stored, sum)
	}

	p := &Partition{
		Generation: buf.U32LE(data[format.PartitionGenerationOffset:]),
		raw:        bytes.Clone(data),
	}
	off := format.PartitionHeaderSize
	p.Common, err = parseSection(data[off:], format.CommonName, len(data)-off)
	if err != nil {
		return nil, err
	}
	off += p.Common.Size()
	if !buf.Has(data, off, format.CHRPHeaderSize) {
		return nil, types.Newf(types.ErrKindSectionTooBig, "section common leaves no room for system")
	}
	p.System, err = parseSection(data[off:], format.SystemName, len(data)-off)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Partition) clone() *Partition {
	return &Partition{
		Generation: p.Generation,
		Common:     p.Common.clone(),
		System:     p.System.clone(),
		raw:        bytes.Clone(p.raw),
	}
}

// serialize encodes the partition into dst, which is p.Size() bytes.
func (p *Partition) serialize(dst []byte) error {
	copy(dst, p.raw)
	hdr := dst[:format.PartitionHeaderSize]
	clear(hdr)
	if err := format.PutCHRPHeader(hdr, format.PartitionSignature, format.PartitionName, format.PartitionHeaderSize); err != nil {
		return types.Wrap(types.ErrKindParse, "partition header", err)
	}
	buf.PutU32LE(dst[format.PartitionGenerationOffset:], p.Generation)

	off := format.PartitionHeaderSize
	for _, s := range []*Section{p.Common, p.System} {
		if err := s.serialize(dst[off : off+s.Size()]); err != nil {
			return err
		}
		off += s.Size()
	}
	buf.PutU32LE(dst[format.PartitionAdlerOffset:], adler32.Checksum(dst[format.PartitionChecksumStart:]))
	return nil
}
