package ops

import (
	"github.com/joshuapare/nvramkit/pkg/nvram"
	"github.com/joshuapare/nvramkit/pkg/types"
)

// Image is the container surface the executor works against.
type Image interface {
	ActivePartition() *nvram.Partition
	PrepareForWrite()
	Serialize() ([]byte, error)
}

// Resolve returns the live section of the active partition that name
// addresses.
func Resolve(name string, img Image) (*nvram.Section, error) {
	p := types.PartitionName(name)
	if !p.Valid() {
		return nil, types.Newf(types.ErrKindUnknownPartition, "unknown partition %q", name)
	}
	return img.ActivePartition().Section(p), nil
}
