// bordergen takes a .bsc border screen file (6912 byte screen payload plus
// 4224 bytes of packed border colors) and generates a cycle exact sjasmplus
// source file which displays it as a free running border image.
//
// By default the screen payload is referenced as <stem>.scr via INCBIN and
// written alongside the output; -inline embeds it as db lines instead.
//
// The output file is named after the input with .asm replacing the
// extension unless given explicitly.
package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmchacon/zxborder/program"
	"github.com/jmchacon/zxborder/ula"
)

var (
	name   = flag.String("name", "", "Filename stem for the snapshot/INCBIN directives. Defaults to the input filename.")
	inline = flag.Bool("inline", false, "If true embed the screen payload as db lines instead of an INCBIN reference")
	phase  = flag.Int("phase", 0, "Phase adjustment in T-states relative to the frame interrupt")
)

func main() {
	flag.Parse()
	if len(flag.Args()) < 1 || len(flag.Args()) > 2 {
		log.Fatalf("Invalid command: %s [-name=stem] [-inline] [-phase=N] <input.bsc> [output.asm]", os.Args[0])
	}
	fn := flag.Args()[0]
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}

	stem := *name
	if stem == "" {
		stem = strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
	}
	out := stem + ".asm"
	if len(flag.Args()) == 2 {
		out = flag.Args()[1]
	}

	src, err := program.Build(b, program.Options{
		Name:   stem,
		Inline: *inline,
		Phase:  *phase,
	})
	if err != nil {
		log.Fatalf("Can't generate from %q - %v", fn, err)
	}
	if err := ioutil.WriteFile(out, []byte(src), 0644); err != nil {
		log.Fatalf("Can't write %q - %v", out, err)
	}
	if !*inline {
		scr := filepath.Join(filepath.Dir(out), stem+".scr")
		if err := ioutil.WriteFile(scr, b[:ula.ScreenBytes], 0644); err != nil {
			log.Fatalf("Can't write %q - %v", scr, err)
		}
	}
}
