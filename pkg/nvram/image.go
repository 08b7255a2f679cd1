package nvram

import (
	"errors"
	"fmt"

	"github.com/joshuapare/nvramkit/internal/format"
	"github.com/joshuapare/nvramkit/pkg/types"
)

// PartitionCount is the number of redundant partitions in an image.
const PartitionCount = 2

// Image is a parsed NVRAM image.
type Image struct {
	size     int
	parts    [PartitionCount]*Partition // nil when the slot failed to parse
	raw      [PartitionCount][]byte     // original bytes for each slot
	active   int
	prepared bool
}

// Parse decodes an NVRAM image. The image is split into two equal
// partitions; at least one must be valid.
func Parse(data []byte) (*Image, error) {
	if len(data)%(PartitionCount*format.CHRPBlockSize) != 0 || len(data)/PartitionCount < format.MinPartitionSize {
		return nil, types.Newf(types.ErrKindParse, "image size %d is not two aligned partitions", len(data))
	}
	half := len(data) / PartitionCount
	img := &Image{size: len(data), active: -1}

	var errs []error
	for i := range PartitionCount {
		chunk := data[i*half : (i+1)*half]
		img.raw[i] = chunk
		p, err := parsePartition(chunk)
		if err != nil {
			errs = append(errs, fmt.Errorf("partition %d: %w", i, err))
			continue
		}
		img.parts[i] = p
		if img.active < 0 || newer(p.Generation, img.parts[img.active].Generation) {
			img.active = i
		}
	}
	if img.active < 0 {
		return nil, types.Wrap(combinedKind(errs), "no valid partition", errors.Join(errs...))
	}
	return img, nil
}

// newer reports whether generation a follows b, allowing the counter to
// wrap: 0 follows 0xFFFFFFFF.
func newer(a, b uint32) bool {
	return int32(a-b) > 0
}

// combinedKind is SectionTooBig when every slot failed for that reason and
// Parse otherwise.
func combinedKind(errs []error) types.ErrKind {
	for _, err := range errs {
		if kind, ok := types.KindOf(err); !ok || kind != types.ErrKindSectionTooBig {
			return types.ErrKindParse
		}
	}
	return types.ErrKindSectionTooBig
}

// New builds a freshly formatted image of size bytes whose sections are
// empty. commonSize is the common section length, header included; the
// system section takes the rest of each partition.
func New(size, commonSize int) (*Image, error) {
	half := size / PartitionCount
	if size%(PartitionCount*format.CHRPBlockSize) != 0 || half < format.MinPartitionSize {
		return nil, types.Newf(types.ErrKindParse, "image size %d is not two aligned partitions", size)
	}
	systemSize := half - format.PartitionHeaderSize - commonSize
	if commonSize < format.CHRPHeaderSize || commonSize%format.CHRPBlockSize != 0 || systemSize < format.CHRPHeaderSize {
		return nil, types.Newf(types.ErrKindSectionTooBig, "common size %d does not fit partition of %d", commonSize, half)
	}
	img := &Image{size: size}
	for i := range PartitionCount {
		img.raw[i] = make([]byte, half)
		img.parts[i] = &Partition{
			Generation: uint32(PartitionCount - 1 - i),
			Common:     newSection(format.CommonName, commonSize),
			System:     newSection(format.SystemName, systemSize),
			raw:        make([]byte, half),
		}
	}
	return img, nil
}

// Size returns the image length in bytes.
func (img *Image) Size() int { return img.size }

// ActiveIndex returns the slot of the active partition.
func (img *Image) ActiveIndex() int { return img.active }

// Partition returns the partition in slot i, or nil if it did not parse.
func (img *Image) Partition(i int) *Partition {
	if i < 0 || i >= PartitionCount {
		return nil
	}
	return img.parts[i]
}

// ActivePartition returns the partition that reads and writes address.
func (img *Image) ActivePartition() *Partition {
	return img.parts[img.active]
}

// Prepared reports whether PrepareForWrite has run.
func (img *Image) Prepared() bool { return img.prepared }

// PrepareForWrite copies the active partition into the other slot with the
// next generation and makes the copy active. The generation wraps from
// 0xFFFFFFFF to 0. Calling it again is a no-op.
func (img *Image) PrepareForWrite() {
	if img.prepared {
		return
	}
	next := (img.active + 1) % PartitionCount
	p := img.parts[img.active].clone()
	p.Generation++
	img.parts[next] = p
	img.active = next
	img.prepared = true
}

// Serialize encodes the whole image. Slots that failed to parse and were
// not replaced are written back byte for byte.
func (img *Image) Serialize() ([]byte, error) {
	out := make([]byte, img.size)
	half := img.size / PartitionCount
	for i := range PartitionCount {
		dst := out[i*half : (i+1)*half]
		p := img.parts[i]
		if p == nil {
			copy(dst, img.raw[i])
			continue
		}
		if err := p.serialize(dst); err != nil {
			return nil, fmt.Errorf("partition %d: %w", i, err)
		}
	}
	return out, nil
}
