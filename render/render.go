// Package render draws what the generated program puts on screen: the 304
// drawn scanlines of border color around the standard screen payload. It is
// used by the preview commands and by tests that want PNG artifacts.
package render

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/jmchacon/zxborder/border"
	"github.com/jmchacon/zxborder/ula"
)

const (
	// Width covers the 48 border segments of a full line.
	Width = ula.FullSegments * ula.SegmentPixels
	// Height covers the drawn window (top + screen + bottom lines).
	Height = ula.DrawnLines

	kScreenWidth = 256
	kLeftPixels  = ula.SideSegments * ula.SegmentPixels

	kAttrStart = 6144
)

// segments paints n border segments of 8 pixels starting at (x,y).
func segments(img *image.NRGBA, buf *border.Buffer, lineOffset, n, x, y int) {
	for seg := 0; seg < n; seg++ {
		c := ula.Palette[buf.SegmentColor(lineOffset, seg)]
		for p := 0; p < ula.SegmentPixels; p++ {
			img.SetNRGBA(x+seg*ula.SegmentPixels+p, y, c)
		}
	}
}

// screenRow paints one 256 pixel row of the screen payload. The bitmap uses
// the interleaved ZX layout and the attribute area supplies ink/paper/bright
// per 8x8 cell.
func screenRow(img *image.NRGBA, scr []byte, row, x, y int) {
	base := ((row & 0xC0) << 5) | ((row & 0x07) << 8) | ((row & 0x38) << 2)
	for col := 0; col < kScreenWidth; col++ {
		bits := scr[base+col>>3]
		attr := scr[kAttrStart+(row>>3)*32+col>>3]
		pal := &ula.Palette
		if attr&0x40 != 0 {
			pal = &ula.BrightPalette
		}
		set := bits&(0x80>>(uint(col)&7)) != 0
		if set {
			img.SetNRGBA(x+col, y, pal[attr&0x07])
		} else {
			img.SetNRGBA(x+col, y, pal[(attr>>3)&0x07])
		}
	}
}

// Image renders the buffer into a new 384x304 frame.
func Image(buf *border.Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	scr := buf.Screen()
	for y := 0; y < ula.TopLines; y++ {
		segments(img, buf, border.TopLineOffset(y), ula.FullSegments, 0, y)
	}
	for row := 0; row < ula.ScreenLines; row++ {
		y := ula.TopLines + row
		off := border.SideLineOffset(row)
		segments(img, buf, off, ula.SideSegments, 0, y)
		screenRow(img, scr, row, kLeftPixels, y)
		segments(img, buf, off+4, ula.SideSegments, kLeftPixels+kScreenWidth, y)
	}
	for n := 0; n < ula.BottomLines; n++ {
		segments(img, buf, border.BottomLineOffset(n), ula.FullSegments, 0, ula.TopLines+ula.ScreenLines+n)
	}
	return img
}

// Scaled returns the image blown up by an integer factor with nearest
// neighbor sampling so pixels stay crisp.
func Scaled(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	d := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Max.X*factor, img.Bounds().Max.Y*factor))
	draw.NearestNeighbor.Scale(d, d.Bounds(), img, img.Bounds(), draw.Over, nil)
	return d
}
