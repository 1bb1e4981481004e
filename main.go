// Command nesforge runs an iNES ROM in a window.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/8bitforge/nesforge/nes"
	"github.com/8bitforge/nesforge/ui"
)

var (
	width  = flag.Int("width", 256*3, "window width in pixels")
	height = flag.Int("height", 240*3, "window height in pixels")
	debug  = flag.Bool("debug", false, "run an interactive stdin debugger instead of opening a window")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		glog.Exit("usage: nesforge [flags] <rom.nes>")
	}
	romPath := flag.Arg(0)

	data, err := os.ReadFile(romPath)
	if err != nil {
		glog.Exitf("nesforge: reading %s: %v", romPath, err)
	}
	cartridge, err := nes.LoadCartridge(data)
	if err != nil {
		glog.Exitf("nesforge: loading %s: %v", romPath, err)
	}

	console := nes.NewConsole(cartridge)
	console.Reset()

	if *debug {
		if err := nes.NewDebugger(console).Run(); err != nil {
			glog.Exitf("nesforge: debugger: %v", err)
		}
		return
	}
	if err := ui.Start(console, *width, *height); err != nil {
		glog.Exitf("nesforge: %v", err)
	}
}
