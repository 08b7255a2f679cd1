// Package mtd decides whether an NVRAM device must be erased before it is
// rewritten, and performs the erase.
//
// Raw NOR flash exposed through the Linux MTD subsystem can only clear bits
// on write; a region must be erased back to 0xFF before new contents are
// programmed. Regular files and block devices need no erase.
package mtd

import (
	"errors"

	"github.com/joshuapare/nvramkit/internal/buf"
)

// ErrNotMTD is returned by GetInfo when the descriptor does not support the
// MTD ioctls.
var ErrNotMTD = errors.New("mtd: not an mtd device")

// Descriptor is anything backed by an OS file descriptor.
type Descriptor interface {
	Fd() uintptr
}

// Info mirrors the fields of struct mtd_info_user used here.
type Info struct {
	Type      uint8
	Flags     uint32
	Size      uint32
	EraseSize uint32
	WriteSize uint32
}

// FlagNoErase is MTD_NO_ERASE: the device does not need erasing.
const FlagNoErase = 0x1000

// NeedsErase reports whether a device with this geometry must be erased
// before rewriting.
func (i Info) NeedsErase() bool {
	return i.EraseSize > 0 && i.Flags&FlagNoErase == 0
}

// EraseLength returns the length to erase ahead of writing n bytes: n rounded
// up to the erase block size, capped at the device size.
func (i Info) EraseLength(n int) uint32 {
	if i.EraseSize == 0 || n <= 0 {
		return 0
	}
	length := buf.AlignUp(n, int(i.EraseSize))
	if i.Size > 0 && length > int(i.Size) {
		length = int(i.Size)
	}
	return uint32(length)
}

// EraseIfNeeded erases the start of the device ahead of writing n bytes when
// the device requires it. Devices that are not MTD are left alone; any other
// failure to query the geometry is returned. It reports whether an erase was
// performed.
func EraseIfNeeded(d Descriptor, n int) (bool, error) {
	info, err := GetInfo(d)
	if errors.Is(err, ErrNotMTD) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.NeedsErase() {
		return false, nil
	}
	length := info.EraseLength(n)
	if length == 0 {
		return false, nil
	}
	if err := Erase(d, 0, length); err != nil {
		return false, err
	}
	return true, nil
}
