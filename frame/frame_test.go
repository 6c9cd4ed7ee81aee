package frame

import (
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/jmchacon/zxborder/border"
	"github.com/jmchacon/zxborder/scanline"
	"github.com/jmchacon/zxborder/ula"
)

func wrap(t *testing.T, raw []byte) *border.Buffer {
	t.Helper()
	b, err := border.New(raw)
	if err != nil {
		t.Fatalf("Can't wrap buffer: %v", err)
	}
	return b
}

func TestAllBlackFrame(t *testing.T) {
	lines := Assemble(wrap(t, make([]byte, border.BufferLen)))
	if got, want := len(lines), ula.DrawnLines; got != want {
		t.Fatalf("Got %d lines and want %d", got, want)
	}
	total := 0
	for i := range lines {
		for _, o := range lines[i].Ops {
			// The forced black start matches every sample so an all
			// black image compiles to pure filler.
			if o.Kind == scanline.ColorChange {
				t.Errorf("Line %d has a color change:\n%v", i, spew.Sdump(lines[i]))
			}
		}
		total += lines[i].Cost()
	}
	if got, want := total, TotalStates; got != want {
		t.Errorf("Got frame total %d and want %d", got, want)
	}
}

func TestColorThreading(t *testing.T) {
	raw := make([]byte, border.BufferLen)
	r := rand.New(rand.NewSource(0xB0BD))
	for i := border.Start; i < border.BufferLen; i++ {
		raw[i] = uint8(r.Intn(256)) & 0x3F
	}
	lines := Assemble(wrap(t, raw))
	if got, want := lines[0].StartColor, uint8(0); got != want {
		t.Errorf("Got first line start color %d and want %d", got, want)
	}
	for i := 1; i < len(lines); i++ {
		if got, want := lines[i].StartColor, lines[i-1].EndColor; got != want {
			t.Errorf("Line %d starts from color %d but line %d ended on %d", i, got, i-1, want)
		}
	}
	total := 0
	for i := range lines {
		if got, want := lines[i].Cost(), ula.LineStates; got != want {
			t.Errorf("Line %d: got cost %d and want %d", i, got, want)
		}
		total += lines[i].Cost()
	}
	if got, want := total, ula.DrawnLines*ula.LineStates; got != want {
		t.Errorf("Got frame total %d and want %d", got, want)
	}
}

func TestRegionOrder(t *testing.T) {
	raw := make([]byte, border.BufferLen)
	// Mark the first segment of each region's first line with a distinct
	// color and check the changes land on the right lines.
	raw[border.TopLineOffset(0)] = 1
	raw[border.SideLineOffset(0)] = 2
	raw[border.BottomLineOffset(0)] = 3
	lines := Assemble(wrap(t, raw))

	tests := []struct {
		name string
		line int
		col  uint8
	}{
		{"Top", 0, 1},
		{"Side", ula.TopLines, 2},
		{"Bottom", ula.TopLines + ula.ScreenLines, 3},
	}
	for _, test := range tests {
		l := lines[test.line]
		if len(l.Ops) == 0 || l.Ops[0].Kind != scanline.ColorChange || l.Ops[0].Color != test.col {
			t.Errorf("%s: line %d doesn't open with a change to %d:\n%v", test.name, test.line, test.col, spew.Sdump(l))
		}
	}
}
