// cursor.go - Little-endian byte reading over page buffers
package goheappage

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrExhausted signals a read past the end of the available bytes.
var ErrExhausted = errors.New("page data exhausted")

// Cursor is a forward-only reader over a byte buffer. All multi-byte
// fields are little-endian, unsigned.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(buf []byte) *Cursor { return &Cursor{buf: buf} }

// Bytes returns the next n bytes and advances the cursor.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("read %dB at %d of %d: %w", n, c.pos, len(c.buf), ErrExhausted)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Pos reports how many bytes have been consumed.
func (c *Cursor) Pos() int { return c.pos }

// Remaining reports how many bytes are left to read.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }
