// Package border provides access to the packed border color data of a .bsc
// border screen image. The layout is a standard 6912 byte screen payload
// followed by per scanline border colors: 64 top lines at 24 bytes each,
// 192 side lines at 8 bytes each and 48 bottom lines at 24 bytes each.
// Colors are 3 bits with two segments packed per byte.
package border

import (
	"errors"
	"fmt"

	"github.com/jmchacon/zxborder/ula"
)

const (
	// Byte strides per line kind. A full line stores 48 segments and a
	// side line stores 8 left + 8 right segments.
	FullLineBytes = 24
	SideLineBytes = 8

	// Border data starts right after the screen payload.
	Start = ula.ScreenBytes

	topBytes    = ula.TopLines * FullLineBytes
	sideBytes   = ula.ScreenLines * SideLineBytes
	bottomBytes = ula.BottomLines * FullLineBytes

	// BufferLen is the total .bsc size: 6912 + 1536 + 1536 + 1152.
	BufferLen = Start + topBytes + sideBytes + bottomBytes
)

// Buffer wraps a caller owned .bsc byte buffer. It is read only to this
// package and must outlive the Buffer.
type Buffer struct {
	b []byte
}

// New validates the buffer and wraps it. Buffers shorter than BufferLen are
// refused since generation would read out of range. Longer buffers are
// allowed and the excess ignored.
func New(b []byte) (*Buffer, error) {
	if b == nil {
		return nil, errors.New("no border buffer supplied")
	}
	if len(b) < BufferLen {
		return nil, fmt.Errorf("border buffer too short. Got %d bytes and need %d", len(b), BufferLen)
	}
	return &Buffer{b: b}, nil
}

// SegmentColor returns the 3 bit color of the given segment on the line
// starting at lineOffset. Even segments sit in the low 3 bits of their byte
// and odd segments in bits 3-5. No bounds checking is done; out of range
// arguments are a caller bug.
func (b *Buffer) SegmentColor(lineOffset, segment int) uint8 {
	v := b.b[lineOffset+segment>>1]
	if segment&1 != 0 {
		v >>= 3
	}
	return v & ula.MASK_COLOR
}

// Screen returns the 6912 byte display payload the generated program copies
// into screen memory.
func (b *Buffer) Screen() []byte {
	return b.b[:ula.ScreenBytes]
}

// TopLineOffset returns the buffer offset of top border line n (0-63).
func TopLineOffset(n int) int {
	return Start + n*FullLineBytes
}

// SideLineOffset returns the buffer offset of side line n (0-191). The first
// 4 bytes are the left border segments and the next 4 the right.
func SideLineOffset(n int) int {
	return Start + topBytes + n*SideLineBytes
}

// BottomLineOffset returns the buffer offset of bottom border line n (0-47).
func BottomLineOffset(n int) int {
	return Start + topBytes + sideBytes + n*FullLineBytes
}
