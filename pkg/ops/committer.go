package ops

import (
	"io"

	"github.com/joshuapare/nvramkit/internal/logger"
	"github.com/joshuapare/nvramkit/internal/mtd"
	"github.com/joshuapare/nvramkit/pkg/types"
)

// Device is the open backing store of an image.
type Device interface {
	io.Writer
	io.Seeker
}

// Eraser decides whether dev must be erased before n bytes are written to
// it, performs the erase when it must, and reports whether it did.
type Eraser interface {
	EraseIfNeeded(dev Device, n int) (bool, error)
}

// EraserFunc adapts a function to Eraser.
type EraserFunc func(dev Device, n int) (bool, error)

// EraseIfNeeded calls f(dev, n).
func (f EraserFunc) EraseIfNeeded(dev Device, n int) (bool, error) { return f(dev, n) }

// MTDEraser erases Linux MTD flash devices and leaves everything else alone.
var MTDEraser Eraser = EraserFunc(func(dev Device, n int) (bool, error) {
	d, ok := dev.(mtd.Descriptor)
	if !ok {
		return false, nil
	}
	return mtd.EraseIfNeeded(d, n)
})

// NoErase never erases.
var NoErase Eraser = EraserFunc(func(Device, int) (bool, error) { return false, nil })

// Committer writes a serialized image over the device in one pass.
type Committer struct {
	Eraser Eraser
}

// Commit erases the device if required, rewinds it and writes data in full.
// A short write is fatal and is not retried.
func (c *Committer) Commit(data []byte, dev Device) (erased bool, err error) {
	eraser := c.Eraser
	if eraser == nil {
		eraser = NoErase
	}
	erased, err = eraser.EraseIfNeeded(dev, len(data))
	if err != nil {
		return false, types.Wrap(types.ErrKindIO, "erase device", err)
	}
	if erased {
		logger.Debug("erased device", "bytes", len(data))
	}

	if _, err := dev.Seek(0, io.SeekStart); err != nil {
		return erased, types.Wrap(types.ErrKindIO, "rewind device", err)
	}
	n, err := dev.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return erased, types.Wrap(types.ErrKindIO, "write device", err)
	}

	if s, ok := dev.(interface{ Sync() error }); ok {
		if err := s.Sync(); err != nil {
			return erased, types.Wrap(types.ErrKindIO, "sync device", err)
		}
	}
	logger.Debug("wrote image", "bytes", n)
	return erased, nil
}
