//go:build linux

package mtd

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl numbers from <mtd/mtd-abi.h>.
const (
	memGetInfo = 0x80204d01 // _IOR('M', 1, struct mtd_info_user)
	memErase   = 0x40084d02 // _IOW('M', 2, struct erase_info_user)
)

type mtdInfoUser struct {
	Type      uint8
	Flags     uint32
	Size      uint32
	EraseSize uint32
	WriteSize uint32
	OOBSize   uint32
	Padding   uint64
}

type eraseInfoUser struct {
	Start  uint32
	Length uint32
}

// GetInfo queries the device geometry with MEMGETINFO.
func GetInfo(d Descriptor) (Info, error) {
	var raw mtdInfoUser
	if err := ioctl(d.Fd(), memGetInfo, unsafe.Pointer(&raw)); err != nil {
		return Info{}, classifyInfoError(err)
	}
	return Info{
		Type:      raw.Type,
		Flags:     raw.Flags,
		Size:      raw.Size,
		EraseSize: raw.EraseSize,
		WriteSize: raw.WriteSize,
	}, nil
}

// classifyInfoError maps the errno of a failed MEMGETINFO. ENOTTY and EINVAL
// come from descriptors that do not implement the MTD ioctls; anything else
// is a real failure on the device.
func classifyInfoError(err error) error {
	if errors.Is(err, unix.ENOTTY) || errors.Is(err, unix.EINVAL) {
		return fmt.Errorf("%w: %w", ErrNotMTD, err)
	}
	return fmt.Errorf("mtd: get info: %w", err)
}

// Erase erases [start, start+length) with MEMERASE.
func Erase(d Descriptor, start, length uint32) error {
	req := eraseInfoUser{Start: start, Length: length}
	if err := ioctl(d.Fd(), memErase, unsafe.Pointer(&req)); err != nil {
		return fmt.Errorf("mtd: erase [0x%x, 0x%x): %w", start, start+length, err)
	}
	return nil
}

func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
