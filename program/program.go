// Package program wraps a generated frame body into a complete runnable
// sjasmplus source file: one time initialization, a single interrupt
// synchronization, constant cost delay loops and the data section. The main
// loop it emits costs exactly 71680 T-states per iteration with no data
// dependent branching, so the one alignment done at startup holds forever.
package program

import (
	"bytes"
	"fmt"

	"github.com/jmchacon/zxborder/border"
	"github.com/jmchacon/zxborder/frame"
	"github.com/jmchacon/zxborder/scanline"
	"github.com/jmchacon/zxborder/ula"
)

const (
	// Z80 T-state costs for the shell instructions. The frame body only
	// ever uses out (c),r and nop whose costs live in ula.
	kLD_R_N    = 7  // ld r,n
	kLD_RR_NN  = 10 // ld rr,nn
	kDJNZ      = 13 // djnz taken
	kDJNZ_LAST = 8  // djnz fall through
	kDEC_RR    = 6
	kINC_RR    = 6
	kLD_A_B    = 4
	kOR_R      = 4
	kJP        = 10 // jp, conditional or not
	kDI        = 4
	kRET       = 10
	kIM2_INT   = 19 // interrupt accept out of halt in im 2

	// From interrupt accept until the one time alignment delay starts:
	// the im2 vector lands on a lone ret and the mainline does di.
	kSyncOverhead = kIM2_INT + kRET + kDI

	// The inter frame gap burns the 16 undrawn scanlines minus the loop
	// epilogue (out (c),0 plus jp main_loop).
	kGapStates = ula.BlankLines*ula.LineStates - ula.OutStates - kJP

	// Where main_loop must sit relative to the interrupt so the first
	// drawn line starts exactly when the top border becomes visible.
	kEntryPhase = ula.BlankLines*ula.LineStates - kGapStates

	// Color register restore values used by the delay blocks.
	kRestoreBC = 0x02FE // b = red, c = ULA port
	kRestoreA  = 0x01   // a = blue
)

// Options selects the output variants of Build.
type Options struct {
	// Name is the filename stem used for the snapshot directive and, in
	// external data mode, the INCBIN reference.
	Name string
	// Inline embeds the screen payload as db lines instead of emitting
	// an INCBIN reference to <Name>.scr.
	Inline bool
	// Phase shifts the whole frame by the given number of T-states
	// relative to the interrupt. Zero aligns the first drawn line to
	// the first visible top border scanline.
	Phase int
}

// delayBlock is a fully solved constant cost delay: source lines plus their
// exact summed T-state cost.
type delayBlock struct {
	lines []string
	cost  int
}

// pad renders n nops through the same run compression the line emitters use.
func pad(n int) string {
	return scanline.Op{Kind: scanline.Filler, Count: n}.Asm()
}

// shortDelay solves a target with one djnz loop:
//
//	ld b,N / djnz / ld b,2 / nop padding
//
// for a cost of 13N+9+4P. b doubles as the red color register so the block
// restores it on the way out. N starts at 255 and drops until the leftover
// padding divides into nops.
func shortDelay(label string, target int) (delayBlock, error) {
	for n := 255; n >= 1; n-- {
		rem := target - (kLD_R_N + kDJNZ*(n-1) + kDJNZ_LAST + kLD_R_N)
		if rem < 0 || rem%ula.NopStates != 0 {
			continue
		}
		d := delayBlock{cost: kLD_R_N + kDJNZ*(n-1) + kDJNZ_LAST + kLD_R_N + rem}
		d.lines = append(d.lines,
			fmt.Sprintf("\tld b, %d", n),
			fmt.Sprintf("%s:\tdjnz %s", label, label),
			"\tld b, 2\t\t\t; restore the red color register")
		if rem > 0 {
			d.lines = append(d.lines, "\t"+pad(rem/ula.NopStates))
		}
		return d, nil
	}
	return delayBlock{}, fmt.Errorf("no djnz delay solution for %d t-states", target)
}

// longDelay solves a target with a 16 bit countdown:
//
//	ld bc,N / (dec bc, ld a,b, or c, jp nz) xN / fixups / restores
//
// at 24 T-states per iteration. The loop clobbers bc and a so both are
// reloaded with their color assignments at the end. Odd targets take one
// ld a,0 and a mod 4 residue of 2 takes one inc bc; nops soak up the rest.
func longDelay(label string, target int) (delayBlock, error) {
	const perIter = kDEC_RR + kLD_A_B + kOR_R + kJP

	rem := target - (kLD_RR_NN + kLD_RR_NN + kLD_R_N)
	extra7 := rem % 2
	rem -= extra7 * kLD_R_N
	extra6 := 0
	if rem%ula.NopStates != 0 {
		extra6 = 1
		rem -= kINC_RR
	}
	if rem < perIter {
		return delayBlock{}, fmt.Errorf("delay target %d t-states too small to solve", target)
	}
	n := rem / perIter
	if n > 0xFFFF {
		n = 0xFFFF
	}
	p := (rem - n*perIter) / ula.NopStates

	d := delayBlock{
		cost: kLD_RR_NN + n*perIter + extra6*kINC_RR + extra7*kLD_R_N +
			p*ula.NopStates + kLD_RR_NN + kLD_R_N,
	}
	d.lines = append(d.lines,
		fmt.Sprintf("\tld bc, %d", n),
		fmt.Sprintf("%s:", label),
		"\tdec bc",
		"\tld a, b",
		"\tor c",
		fmt.Sprintf("\tjp nz, %s", label))
	if extra6 != 0 {
		d.lines = append(d.lines, "\tinc bc")
	}
	if extra7 != 0 {
		d.lines = append(d.lines, "\tld a, 0")
	}
	if p > 0 {
		d.lines = append(d.lines, "\t"+pad(p))
	}
	d.lines = append(d.lines,
		fmt.Sprintf("\tld bc, #%04x\t\t; restore red + ula port", kRestoreBC),
		fmt.Sprintf("\tld a, #%02x\t\t; restore blue", kRestoreA))
	return d, nil
}

// Build generates the complete assembly source for the given .bsc buffer.
// Either the whole document is produced or an error is returned; there is
// no partial output.
func Build(data []byte, opts Options) (string, error) {
	buf, err := border.New(data)
	if err != nil {
		return "", err
	}
	name := opts.Name
	if name == "" {
		name = "border"
	}

	lines := frame.Assemble(buf)
	total := 0
	for i := range lines {
		c := lines[i].Cost()
		if c != ula.LineStates {
			return "", fmt.Errorf("line %d costs %d t-states, want %d", i, c, ula.LineStates)
		}
		total += c
	}
	if total != frame.TotalStates {
		return "", fmt.Errorf("frame body costs %d t-states, want %d", total, frame.TotalStates)
	}

	gap, err := shortDelay(".gap", kGapStates)
	if err != nil {
		return "", err
	}
	if got, want := gap.cost+total+ula.OutStates+kJP, ula.FrameStates; got != want {
		return "", fmt.Errorf("main loop costs %d t-states, want %d", got, want)
	}

	// The one time alignment runs from interrupt accept to main_loop.
	// Fold the phase into one frame and push out a whole frame when the
	// remainder is too tight to build a loop from.
	entry := ((kEntryPhase+opts.Phase)%ula.FrameStates + ula.FrameStates) % ula.FrameStates
	syncTarget := entry - kSyncOverhead
	for syncTarget < 64 {
		syncTarget += ula.FrameStates
	}
	sync, err := longDelay(".align", syncTarget)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	w := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	w("; %s - free running border image player", name)
	w("; timing profile: %d t-states/line, %d lines/frame, %d t-states/frame",
		ula.LineStates, ula.FrameLines, ula.FrameStates)
	w("; color registers: 1=a 2=b 3=d 4=e 5=h 6=c 7=l, black via out (c),0")
	w("")
	w("\tDEVICE ZXSPECTRUM128")
	w("")
	w("\tORG #8000")
	w("")
	w("start:")
	w("\tdi")
	w("\tld sp, start\t\t; stack grows down below the code")
	w("")
	w("\t; screen payload into display memory")
	w("\tld hl, screen_data")
	w("\tld de, #%04x", ula.SCREEN_BASE)
	w("\tld bc, %d", ula.ScreenBytes)
	w("\tldir")
	w("")
	w("\t; minimal im 2 handler: a vector page of #fd bytes at #fe00")
	w("\t; landing on the lone ret at #fdfd (placed at assembly time)")
	w("\tld a, #fe")
	w("\tld i, a")
	w("\tim 2")
	w("")
	w("\t; preload every color register once; the frame body never")
	w("\t; translates a color at runtime")
	w("\tld bc, #%04x\t\t; b = red, c = ula port (low 3 bits = yellow)", kRestoreBC)
	w("\tld de, #0304\t\t; d = magenta, e = green")
	w("\tld hl, #0507\t\t; h = cyan, l = white")
	w("\tld a, #%02x\t\t; a = blue", kRestoreA)
	w("")
	w("\t; align to the interrupt exactly once. every frame afterwards is")
	w("\t; paced by constant cost delays so the phase never drifts.")
	w("\tei")
	w("\thalt")
	w("sync:")
	w("\tdi")
	w("\t; one time alignment: %d t-states from interrupt accept", sync.cost+kSyncOverhead)
	for _, l := range sync.lines {
		w("%s", l)
	}
	w("")
	w("main_loop:")
	w("\t; inter frame gap: %d blank scanlines minus the loop epilogue = %d t-states",
		ula.BlankLines, gap.cost)
	for _, l := range gap.lines {
		w("%s", l)
	}
	w("")
	w("\t; frame body: %d scanlines of %d t-states each", ula.DrawnLines, ula.LineStates)
	for i := range lines {
		switch i {
		case 0:
			w("")
			w("\t; top border (%d lines)", ula.TopLines)
		case ula.TopLines:
			w("")
			w("\t; screen rows (%d lines)", ula.ScreenLines)
		case ula.TopLines + ula.ScreenLines:
			w("")
			w("\t; bottom border (%d lines)", ula.BottomLines)
		}
		for j, o := range lines[i].Ops {
			if j == 0 {
				w("\t%s\t\t; y=%d", o.Asm(), i)
				continue
			}
			w("\t%s", o.Asm())
		}
	}
	w("")
	w("\tout (c), 0\t\t; border black for the blank lines")
	w("\tjp main_loop\t\t; exactly %d t-states around", ula.FrameStates)
	w("")
	w("screen_data:")
	if opts.Inline {
		screen := buf.Screen()
		for i := 0; i < len(screen); i += 16 {
			row := screen[i : i+16]
			var line bytes.Buffer
			line.WriteString("\tdb ")
			for j, v := range row {
				if j != 0 {
					line.WriteString(",")
				}
				fmt.Fprintf(&line, "#%02x", v)
			}
			w("%s", line.String())
		}
	} else {
		w("\tINCBIN \"%s.scr\"", name)
	}
	w("")
	w("\tORG #fdfd")
	w("im2_ret:")
	w("\tret")
	w("")
	w("\tORG #fe00")
	w("\tds 257, #fd")
	w("")
	w("\tSAVESNA \"%s.sna\", start", name)

	return b.String(), nil
}
