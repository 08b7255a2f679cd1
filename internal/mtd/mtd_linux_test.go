//go:build linux

package mtd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type rawFd uintptr

func (f rawFd) Fd() uintptr { return uintptr(f) }

func TestClassifyInfoError(t *testing.T) {
	tests := []struct {
		errno  unix.Errno
		notMTD bool
	}{
		{unix.ENOTTY, true},
		{unix.EINVAL, true},
		{unix.EBADF, false},
		{unix.EIO, false},
	}
	for _, tt := range tests {
		err := classifyInfoError(tt.errno)
		assert.Equal(t, tt.notMTD, errors.Is(err, ErrNotMTD), "errno %v", tt.errno)
		assert.ErrorIs(t, err, tt.errno)
	}
}

func TestEraseIfNeededReportsDeviceFailure(t *testing.T) {
	// -1 is never an open descriptor, so MEMGETINFO fails with EBADF.
	erased, err := EraseIfNeeded(rawFd(^uintptr(0)), 4)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotMTD)
	assert.ErrorIs(t, err, unix.EBADF)
	assert.False(t, erased)
}
