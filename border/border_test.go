package border

import (
	"testing"

	"github.com/jmchacon/zxborder/ula"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Nil", -1, true},
		{"Empty", 0, true},
		{"OneShort", BufferLen - 1, true},
		{"Exact", BufferLen, false},
		{"Oversized", BufferLen + 512, false},
	}
	for _, test := range tests {
		var raw []byte
		if test.size >= 0 {
			raw = make([]byte, test.size)
		}
		_, err := New(raw)
		if got, want := err != nil, test.wantErr; got != want {
			t.Errorf("%s: got err %v and want error %t", test.name, err, want)
		}
	}
}

func TestSegmentColorPacking(t *testing.T) {
	raw := make([]byte, BufferLen)
	// Even segment in the low 3 bits, odd segment in bits 3-5. The top 2
	// bits are ignored.
	raw[Start] = 0xC0 | 5<<3 | 2
	b, err := New(raw)
	if err != nil {
		t.Fatalf("Can't wrap buffer: %v", err)
	}
	if got, want := b.SegmentColor(Start, 0), uint8(2); got != want {
		t.Errorf("Even segment: got %d and want %d", got, want)
	}
	if got, want := b.SegmentColor(Start, 1), uint8(5); got != want {
		t.Errorf("Odd segment: got %d and want %d", got, want)
	}
	// Segment index addresses bytes at half stride.
	raw[Start+3] = 7
	if got, want := b.SegmentColor(Start, 6), uint8(7); got != want {
		t.Errorf("Segment 6: got %d and want %d", got, want)
	}
}

func TestLayout(t *testing.T) {
	if got, want := BufferLen, 11136; got != want {
		t.Errorf("Got buffer length %d and want %d", got, want)
	}
	if got, want := Start, ula.ScreenBytes; got != want {
		t.Errorf("Got border start %d and want %d", got, want)
	}
	if got, want := TopLineOffset(0), 6912; got != want {
		t.Errorf("Got top start %d and want %d", got, want)
	}
	if got, want := TopLineOffset(1)-TopLineOffset(0), FullLineBytes; got != want {
		t.Errorf("Got top stride %d and want %d", got, want)
	}
	if got, want := SideLineOffset(0), TopLineOffset(ula.TopLines-1)+FullLineBytes; got != want {
		t.Errorf("Side region doesn't follow top region: got %d and want %d", got, want)
	}
	if got, want := SideLineOffset(1)-SideLineOffset(0), SideLineBytes; got != want {
		t.Errorf("Got side stride %d and want %d", got, want)
	}
	if got, want := BottomLineOffset(0), SideLineOffset(ula.ScreenLines-1)+SideLineBytes; got != want {
		t.Errorf("Bottom region doesn't follow side region: got %d and want %d", got, want)
	}
	if got, want := BottomLineOffset(ula.BottomLines-1)+FullLineBytes, BufferLen; got != want {
		t.Errorf("Bottom region doesn't end the buffer: got %d and want %d", got, want)
	}
}

func TestScreen(t *testing.T) {
	raw := make([]byte, BufferLen)
	raw[0] = 0xAA
	raw[ula.ScreenBytes-1] = 0x55
	b, err := New(raw)
	if err != nil {
		t.Fatalf("Can't wrap buffer: %v", err)
	}
	s := b.Screen()
	if got, want := len(s), ula.ScreenBytes; got != want {
		t.Fatalf("Got screen length %d and want %d", got, want)
	}
	if s[0] != 0xAA || s[len(s)-1] != 0x55 {
		t.Errorf("Screen payload doesn't alias the buffer: got %x/%x", s[0], s[len(s)-1])
	}
}
