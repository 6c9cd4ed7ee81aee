// Package frame sequences the 304 drawn scanlines of one border image frame:
// 64 full top lines, 192 side lines and 48 full bottom lines. The active
// border color threads from each line into the next with no per line reset;
// the program shell forces black before the first line and after the last.
package frame

import (
	"github.com/jmchacon/zxborder/border"
	"github.com/jmchacon/zxborder/scanline"
	"github.com/jmchacon/zxborder/ula"
)

// TotalStates is the exact cost of the frame body. The remaining 16
// scanlines of the 71680 T-state frame belong to the shell's inter frame
// delay and loop epilogue.
const TotalStates = ula.DrawnLines * ula.LineStates

// Assemble emits all drawn lines of the frame in beam order. The first line
// starts from color 0 (the shell has just forced the border black) and every
// subsequent line starts from its predecessor's end color.
func Assemble(buf *border.Buffer) []scanline.Line {
	lines := make([]scanline.Line, 0, ula.DrawnLines)
	active := uint8(0)
	for i := 0; i < ula.TopLines; i++ {
		l := scanline.EmitFull(buf, border.TopLineOffset(i), active)
		active = l.EndColor
		lines = append(lines, l)
	}
	for i := 0; i < ula.ScreenLines; i++ {
		l := scanline.EmitSide(buf, border.SideLineOffset(i), active)
		active = l.EndColor
		lines = append(lines, l)
	}
	for i := 0; i < ula.BottomLines; i++ {
		l := scanline.EmitFull(buf, border.BottomLineOffset(i), active)
		active = l.EndColor
		lines = append(lines, l)
	}
	return lines
}
