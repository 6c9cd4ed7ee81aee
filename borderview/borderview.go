// borderview shows what a .bsc border screen will look like once the
// generated program runs: the border colors around the decoded screen
// payload. Optionally writes the frame to a PNG as well.
package main

import (
	"flag"
	"image"
	"image/draw"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jmchacon/zxborder/border"
	"github.com/jmchacon/zxborder/render"
)

var (
	scale  = flag.Int("scale", 2, "Integer scale factor for the preview window")
	pngOut = flag.String("png", "", "If set also write the rendered frame to this PNG file")
)

var window *sdl.Window
var surface *sdl.Surface

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [-scale=N] [-png=file] <input.bsc>", os.Args[0])
	}
	fn := flag.Args()[0]
	raw, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}
	buf, err := border.New(raw)
	if err != nil {
		log.Fatalf("Can't read %s - %v", fn, err)
	}
	img := render.Scaled(render.Image(buf), *scale)

	if *pngOut != "" {
		o, err := os.Create(*pngOut)
		if err != nil {
			log.Fatalf("Can't create %q - %v", *pngOut, err)
		}
		if err := png.Encode(o, img); err != nil {
			log.Fatalf("Can't encode %q - %v", *pngOut, err)
		}
		if err := o.Close(); err != nil {
			log.Fatalf("Error closing %q - %v", *pngOut, err)
		}
	}

	sdl.Main(func() {
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
				log.Fatalf("Can't init SDL: %v", err)
			}
			var err error
			window, err = sdl.CreateWindow(fn, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
				int32(img.Bounds().Max.X), int32(img.Bounds().Max.Y), sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("Can't create window: %v", err)
			}
			surface, err = window.GetSurface()
			if err != nil {
				log.Fatalf("Can't get window surface: %v", err)
			}
			wg.Done()
		})
		wg.Wait()
		defer func() {
			window.Destroy()
			sdl.Quit()
		}()

		sdl.Do(func() {
			draw.Draw(surface, surface.Bounds(), img, image.Point{}, draw.Src)
			if err := window.UpdateSurface(); err != nil {
				log.Fatalf("Can't update surface: %v", err)
			}
		})
		for {
			quit := false
			sdl.Do(func() {
				for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
					switch ev.(type) {
					case *sdl.QuitEvent:
						quit = true
					}
				}
			})
			if quit {
				break
			}
			sdl.Delay(16)
		}
	})
}
