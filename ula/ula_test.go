package ula

import "testing"

func TestTimingProfile(t *testing.T) {
	if got, want := FrameStates, 71680; got != want {
		t.Errorf("Got %d t-states/frame and want %d", got, want)
	}
	if got, want := LineStates*FrameLines, FrameStates; got != want {
		t.Errorf("Lines don't tile the frame: got %d and want %d", got, want)
	}
	if got, want := DrawnLines, 304; got != want {
		t.Errorf("Got %d drawn lines and want %d", got, want)
	}
	if got, want := DrawnLines+BlankLines, FrameLines; got != want {
		t.Errorf("Drawn+blank lines: got %d and want %d", got, want)
	}
	if got, want := FullSegments, 48; got != want {
		t.Errorf("Got %d full line segments and want %d", got, want)
	}
	if got, want := RightStartState-LeftEndState, 128; got != want {
		t.Errorf("Got screen area of %d t-states and want %d", got, want)
	}
	// Both instruction costs must tile into the 4 t-state grid or line
	// budgets could never come out exact.
	if OutStates%NopStates != 0 {
		t.Errorf("Out cost %d doesn't align to the nop grid %d", OutStates, NopStates)
	}
}

func TestColorRegs(t *testing.T) {
	// Every color needs its own operand and yellow must be the port
	// register itself since its low 3 bits read back as 6.
	seen := make(map[string]uint8)
	for col := uint8(0); col < 8; col++ {
		r := ColorReg(col)
		if prev, ok := seen[r]; ok {
			t.Errorf("Color %d and %d share operand %q", prev, col, r)
		}
		seen[r] = col
	}
	if got, want := ColorReg(PORT&MASK_COLOR), "c"; got != want {
		t.Errorf("Got %q for the port color and want %q", got, want)
	}
	if got, want := ColorReg(0), "0"; got != want {
		t.Errorf("Got %q for black and want %q", got, want)
	}
}

func TestColorNames(t *testing.T) {
	if got, want := ColorName(0), "black"; got != want {
		t.Errorf("Got %q and want %q", got, want)
	}
	if got, want := ColorName(7), "white"; got != want {
		t.Errorf("Got %q and want %q", got, want)
	}
}
