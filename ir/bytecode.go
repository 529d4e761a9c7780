package ir

import (
	"encoding/binary"
	"fmt"
)

// Bytecode is a flat compiled instruction buffer addressed by absolute
// offset. Patches overwrite fixed-width big-endian integer fields in place;
// offsets must already lie within the buffer.
type Bytecode []byte

func (b Bytecode) PutUint16(offset int, v uint16) error {
	if offset < 0 || offset+2 > len(b) {
		return fmt.Errorf("%w: offset %d width 2 in buffer of %d", ErrOutOfBounds, offset, len(b))
	}
	binary.BigEndian.PutUint16(b[offset:], v)
	return nil
}

func (b Bytecode) PutInt32(offset int, v int32) error {
	if offset < 0 || offset+4 > len(b) {
		return fmt.Errorf("%w: offset %d width 4 in buffer of %d", ErrOutOfBounds, offset, len(b))
	}
	binary.BigEndian.PutUint32(b[offset:], uint32(v))
	return nil
}
