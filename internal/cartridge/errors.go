package cartridge

import "fmt"

// ErrUnsupportedFileFormat is returned when the magic bytes don't match
// the iNES signature.
var ErrUnsupportedFileFormat = fmt.Errorf("nesgo: unsupported file format")

// ErrUnsupportedVersion is the loader error for unsupported header
// versions. New does not return it: NES 2.0 headers are read with the
// iNES field layout, their extended fields ignored.
var ErrUnsupportedVersion = fmt.Errorf("nesgo: unsupported iNES version")

// ErrUnexpectedEndOfInput wraps a short read of the ROM bytes.
type ErrUnexpectedEndOfInput struct {
	Expected int
	Length   int
}

func (e *ErrUnexpectedEndOfInput) Error() string {
	return fmt.Sprintf("nesgo: unexpected end of input: expected %d bytes, got %d", e.Expected, e.Length)
}

// ErrUnsupportedMapper is returned when the header names a mapper id this
// build has no implementation for.
type ErrUnsupportedMapper struct {
	ID uint16
}

func (e *ErrUnsupportedMapper) Error() string {
	return fmt.Sprintf("nesgo: unsupported mapper id %d", e.ID)
}
