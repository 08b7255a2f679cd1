package format

import "errors"

var (
	// ErrSignatureMismatch indicates a structure had an unexpected signature or name.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrChecksum indicates a stored checksum did not match the data.
	ErrChecksum = errors.New("format: checksum mismatch")
	// ErrTooLarge indicates a structure cannot be expressed in its length field.
	ErrTooLarge = errors.New("format: structure too large")
)
