// Package device wraps the NVRAM backing file: a flash character device such
// as /dev/mtd0 on real hardware, or a plain image file.
package device

import (
	"fmt"
	"io"
	"os"
)

// File is an NVRAM device opened for reading and writing. It is read once
// and rewound for the final write rather than reopened.
type File struct {
	f    *os.File
	path string
}

// Open opens an existing device read-write.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &File{f: f, path: path}, nil
}

// Path returns the path the device was opened from.
func (d *File) Path() string { return d.path }

// ReadAll reads the whole device from offset 0.
func (d *File) ReadAll() ([]byte, error) {
	if _, err := d.f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", d.path, err)
	}
	data, err := io.ReadAll(d.f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}
	return data, nil
}

func (d *File) Read(p []byte) (int, error)  { return d.f.Read(p) }
func (d *File) Write(p []byte) (int, error) { return d.f.Write(p) }

func (d *File) Seek(offset int64, whence int) (int64, error) {
	return d.f.Seek(offset, whence)
}

// Fd returns the underlying descriptor for ioctl use.
func (d *File) Fd() uintptr { return d.f.Fd() }

// Sync flushes written data to the device.
func (d *File) Sync() error {
	return datasync(d.f)
}

// Close releases the device. It is safe to call more than once.
func (d *File) Close() error {
	if d == nil || d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
