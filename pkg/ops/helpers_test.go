package ops

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nvramkit/pkg/nvram"
)

const (
	testImageSize  = 0x4000
	testCommonSize = 0x800
)

// memDevice is an in-memory Device that records the calls made to it.
type memDevice struct {
	data   []byte
	pos    int64
	writes int
	events []string
	short  bool // accept one byte less than asked
}

func (d *memDevice) Write(p []byte) (int, error) {
	d.writes++
	d.events = append(d.events, "write")
	n := len(p)
	if d.short && n > 0 {
		n--
	}
	end := int(d.pos) + n
	if end > len(d.data) {
		d.data = append(d.data, make([]byte, end-len(d.data))...)
	}
	copy(d.data[d.pos:end], p[:n])
	d.pos = int64(end)
	return n, nil
}

func (d *memDevice) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, errors.New("memDevice: only SeekStart supported")
	}
	d.events = append(d.events, "seek")
	d.pos = offset
	return offset, nil
}

// recordingEraser reports erase decisions into the device's event list.
type recordingEraser struct {
	erase bool
	err   error
	sizes []int
}

func (r *recordingEraser) EraseIfNeeded(dev Device, n int) (bool, error) {
	r.sizes = append(r.sizes, n)
	if d, ok := dev.(*memDevice); ok {
		d.events = append(d.events, "erase")
	}
	return r.erase, r.err
}

// newTestSetup returns an empty image, stored on a memDevice.
func newTestSetup(t *testing.T) (*nvram.Image, *memDevice) {
	t.Helper()
	img, err := nvram.New(testImageSize, testCommonSize)
	require.NoError(t, err)
	data, err := img.Serialize()
	require.NoError(t, err)
	parsed, err := nvram.Parse(data)
	require.NoError(t, err)
	return parsed, &memDevice{data: data}
}

// reparse parses what the device holds now.
func reparse(t *testing.T, dev *memDevice) *nvram.Image {
	t.Helper()
	img, err := nvram.Parse(dev.data)
	require.NoError(t, err)
	return img
}
