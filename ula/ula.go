// Package ula defines the fixed timing profile and border color model of the
// ULA in a pentagon timed ZX spectrum clone. Everything here is a constant
// property of the target hardware. The code generator depends on these being
// exact since any error shows up as visible tearing on screen.
package ula

import "image/color"

const (
	// Convention for constants:
	//
	// All caps - uint8/uint16 port values and masks.
	// Mixed case - Integer constants for screen geometry and T-state costs.

	// Pentagon timing. One scanline is 224 T-states and a frame is 320
	// scanlines so a frame is 71680 T-states. This is also the exact
	// period of the maskable interrupt.
	LineStates  = 224
	FrameLines  = 320
	FrameStates = LineStates * FrameLines

	// The visible portion of a scanline the border generator can color is
	// 192 T-states. The remaining 32 are horizontal blank/retrace.
	VisibleStates = 192

	// One border segment is 8 pixels. The beam draws 2 pixels per T-state
	// so a segment is 4 T-states wide.
	SegmentPixels = 8
	SegmentStates = 4

	// Drawn window geometry. The frame body covers 304 scanlines (top
	// border, screen rows, bottom border). The other 16 scanlines of the
	// frame are vertical blank and are burned by the inter frame delay.
	TopLines    = 64
	ScreenLines = 192
	BottomLines = 48
	DrawnLines  = TopLines + ScreenLines + BottomLines
	BlankLines  = FrameLines - DrawnLines

	// Segment counts per line kind. A side line has 8 border segments on
	// each edge of the 128 T-state (256 pixel) screen area.
	FullSegments = VisibleStates / SegmentStates
	SideSegments = 8

	// T-state offsets of the side line regions.
	LeftEndState    = SideSegments * SegmentStates               // 32
	RightStartState = VisibleStates - SideSegments*SegmentStates // 160

	// Instruction costs. A color change is out (c),r at 12 T-states. The
	// filler unit is nop at 4 T-states.
	OutStates = 12
	NopStates = 4

	// A border out issued at T-state X takes effect on screen 8 T-states
	// later. The side line emitter samples the first right border segment
	// this far ahead of its visible start.
	OutLatency = 8

	// ULA port. Only the low 3 bits of a write matter for border color.
	PORT = uint8(0xFE)

	MASK_COLOR = uint8(0x07)

	// Screen memory as loaded by the generated program.
	SCREEN_BASE = uint16(0x4000)
	ScreenBytes = 6912
)

// colorRegs maps each of the 8 border colors to the operand of the
// out (c),reg instruction that produces it. The generated program preloads
// these once at startup so the frame body never translates colors:
//
//	1=a 2=b 3=d 4=e 5=h 7=l
//
// Color 6 needs no register of its own: c holds the port value 0xFE whose
// low 3 bits are 6, so out (c),c writes yellow. Color 0 uses the out (c),0
// form which outputs a constant zero. b doubles as the port high byte which
// the ULA ignores for decoding.
var colorRegs = [8]string{"0", "a", "b", "d", "e", "h", "c", "l"}

// ColorReg returns the out (c),X operand statically assigned to the given
// border color. Colors are 3 bits; callers must mask first.
func ColorReg(col uint8) string {
	return colorRegs[col]
}

// ColorName returns the conventional name of a border color for comments
// and diagnostics.
func ColorName(col uint8) string {
	return colorNames[col]
}

var colorNames = [8]string{"black", "blue", "red", "magenta", "green", "cyan", "yellow", "white"}

// Palette is the non-bright ZX palette indexed by color number. The border
// never renders bright.
var Palette = [8]color.NRGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0x00, 0x00, 0xD7, 0xFF},
	{0xD7, 0x00, 0x00, 0xFF},
	{0xD7, 0x00, 0xD7, 0xFF},
	{0x00, 0xD7, 0x00, 0xFF},
	{0x00, 0xD7, 0xD7, 0xFF},
	{0xD7, 0xD7, 0x00, 0xFF},
	{0xD7, 0xD7, 0xD7, 0xFF},
}

// BrightPalette is the bright variant used by screen attribute rendering.
var BrightPalette = [8]color.NRGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0x00, 0x00, 0xFF, 0xFF},
	{0xFF, 0x00, 0x00, 0xFF},
	{0xFF, 0x00, 0xFF, 0xFF},
	{0x00, 0xFF, 0x00, 0xFF},
	{0x00, 0xFF, 0xFF, 0xFF},
	{0xFF, 0xFF, 0x00, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
}
