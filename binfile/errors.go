package binfile

import "errors"

var (
	// ErrInvalidMode is returned by Open and ParseMode for an unknown discipline name.
	ErrInvalidMode = errors.New("binfile: invalid mode")

	// ErrAddressNotFound is returned when a read or an in-place write addresses
	// a slot that does not exist.
	ErrAddressNotFound = errors.New("binfile: address does not exist in this file")

	// ErrAddressOutOfCapacity is returned when a random file seeks past its capacity.
	ErrAddressOutOfCapacity = errors.New("binfile: address exceeds file capacity")

	// ErrUnsupportedOperation is returned by Seek on a serial file.
	ErrUnsupportedOperation = errors.New("binfile: serial files do not support direct access")

	// ErrClosed is returned by every operation on a closed file.
	ErrClosed = errors.New("binfile: cannot operate on a closed file")
)
