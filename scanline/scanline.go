// Package scanline converts one scanline of border color data into a cycle
// exact Z80 instruction stream. Each emitted line costs exactly 224 T-states
// by construction: color changes are out (c),reg at 12 T-states and filler is
// nop at 4 T-states, with consecutive nops compressed into one repeat block.
package scanline

import (
	"fmt"

	"github.com/jmchacon/zxborder/border"
	"github.com/jmchacon/zxborder/ula"
)

// OpKind is the instruction variant tag.
type OpKind int

const (
	// ColorChange writes a preloaded color register to the ULA port.
	ColorChange OpKind = iota
	// Filler burns Count*4 T-states of nops.
	Filler
)

// Op is one emitted instruction. Color is only meaningful for ColorChange
// and Count only for Filler.
type Op struct {
	Kind  OpKind
	Color uint8
	Count int
}

// Cost returns the exact T-state cost of the op.
func (o Op) Cost() int {
	if o.Kind == ColorChange {
		return ula.OutStates
	}
	return ula.NopStates * o.Count
}

// Asm renders the op as sjasmplus source. A single filler is a plain nop
// while longer runs use the .N repeat form. Both shapes cost 4 T-states per
// count so compression never changes timing.
func (o Op) Asm() string {
	switch {
	case o.Kind == ColorChange:
		return fmt.Sprintf("out (c), %s", ula.ColorReg(o.Color))
	case o.Count == 1:
		return "nop"
	default:
		return fmt.Sprintf(".%d nop", o.Count)
	}
}

// Line is the instruction stream for one scanline along with the border
// color state it consumed and produced. EndColor of line N feeds StartColor
// of line N+1.
type Line struct {
	Ops        []Op
	StartColor uint8
	EndColor   uint8
}

// Cost returns the summed T-state cost of the line. Always 224 for lines
// produced by this package.
func (l *Line) Cost() int {
	c := 0
	for _, o := range l.Ops {
		c += o.Cost()
	}
	return c
}

// phase is one horizontal span of a scanline. offset is the buffer offset
// its color data is read from, or -1 for a span with no color data (the
// screen area of a side line). lookahead marks a phase whose first segment
// must be sampled OutLatency T-states before the phase starts so the out
// lands exactly when the span becomes visible.
type phase struct {
	start, end int
	offset     int
	lookahead  bool
}

// scanner walks phases accumulating ops. cursor only ever advances by 12
// (color change) or 4 (filler) so line totals are exact by construction.
type scanner struct {
	ops     []Op
	cursor  int
	pending int
	active  uint8
}

// flush compresses and emits any pending filler. Zero pending is a no-op,
// one pending emits a single nop and more emits one repeat block.
func (s *scanner) flush() {
	if s.pending == 0 {
		return
	}
	s.ops = append(s.ops, Op{Kind: Filler, Count: s.pending})
	s.pending = 0
}

// change emits a color change and accounts its cost.
func (s *scanner) change(col uint8) {
	s.flush()
	s.ops = append(s.ops, Op{Kind: ColorChange, Color: col})
	s.cursor += ula.OutStates
	s.active = col
}

// fillTo queues filler up to the given T-state. The cursor can already sit
// past t when a lookahead change overran a span boundary.
func (s *scanner) fillTo(t int) {
	for s.cursor < t {
		s.pending++
		s.cursor += ula.NopStates
	}
}

// emit runs the scanner over a phase list and closes the line out to 224
// T-states of horizontal blank filler.
func emit(buf *border.Buffer, phases []phase, start uint8) Line {
	s := &scanner{active: start}
	for i, ph := range phases {
		if ph.offset < 0 {
			// No color data here. If the next phase is latency
			// compensated, sample its first segment early and
			// issue the change now so it turns visible exactly at
			// the phase boundary.
			if i+1 < len(phases) && phases[i+1].lookahead {
				nx := phases[i+1]
				s.fillTo(nx.start - ula.OutLatency)
				if c := buf.SegmentColor(nx.offset, 0); c != s.active {
					s.change(c)
				}
			}
			s.fillTo(ph.end)
			continue
		}
		for s.cursor < ph.end {
			seg := (s.cursor - ph.start) / ula.SegmentStates
			if c := buf.SegmentColor(ph.offset, seg); c != s.active {
				s.change(c)
			} else {
				s.pending++
				s.cursor += ula.NopStates
			}
		}
	}
	s.fillTo(ula.LineStates)
	s.flush()
	return Line{Ops: s.ops, StartColor: start, EndColor: s.active}
}

// EmitFull emits a top or bottom border line: 48 segments over the 192
// visible T-states followed by horizontal blank.
func EmitFull(buf *border.Buffer, lineOffset int, start uint8) Line {
	return emit(buf, []phase{
		{start: 0, end: ula.VisibleStates, offset: lineOffset},
	}, start)
}

// EmitSide emits a line with border on both edges of the screen area. The
// left 8 segments live at lineOffset and the right 8 at lineOffset+4. The
// right phase is latency compensated: its first segment is sampled at
// T-state 152 so a differing color is already on screen at 160.
func EmitSide(buf *border.Buffer, lineOffset int, start uint8) Line {
	return emit(buf, []phase{
		{start: 0, end: ula.LeftEndState, offset: lineOffset},
		{start: ula.LeftEndState, end: ula.RightStartState, offset: -1},
		{start: ula.RightStartState, end: ula.VisibleStates, offset: lineOffset + 4, lookahead: true},
	}, start)
}
