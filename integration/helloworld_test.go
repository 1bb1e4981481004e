// Package integration runs a known ROM until its first frame is ready (or a
// fixed frame budget runs out) and compares that frame against a golden
// screenshot. Both files are test
// fixtures not redistributed with this module; the test skips without them.
package integration

import (
	"image/png"
	"os"
	"testing"

	"github.com/8bitforge/nesforge/nes"
)

func TestHelloWorld(t *testing.T) {
	romData, err := os.ReadFile("sample1.nes")
	if err != nil {
		t.Skipf("sample1.nes not available: %v", err)
	}
	wantFile, err := os.Open("helloworld.png")
	if err != nil {
		t.Skipf("helloworld.png not available: %v", err)
	}
	defer wantFile.Close()
	want, err := png.Decode(wantFile)
	if err != nil {
		t.Fatalf("decoding helloworld.png: %v", err)
	}

	cartridge, err := nes.LoadCartridge(romData)
	if err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	console := nes.NewConsole(cartridge)
	console.Reset()

	const maxFrames = 120
	for frame := 0; frame < maxFrames; frame++ {
		got, ready := console.StepFrame()
		if !ready {
			continue
		}
		bounds := got.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if got.At(x, y) != want.At(x, y) {
					t.Fatalf("pixel (%d, %d) on frame %d = %v, want %v", x, y, frame, got.At(x, y), want.At(x, y))
				}
			}
		}
		return
	}
	t.Fatalf("no frame became ready within %d frames", maxFrames)
}
