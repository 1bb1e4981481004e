package nes

import "image"

// Console wires a CPU, PPU, and Controller over a shared Bus and drives
// them forward a frame at a time.
type Console struct {
	cpu        *CPU
	ppu        *PPU
	bus        *Bus
	controller *Controller
}

// NewConsole builds a console around a loaded cartridge.
func NewConsole(cartridge *Cartridge) *Console {
	controller := NewController()
	ppu := NewPPU(cartridge)
	bus := NewBus(ppu, cartridge, controller)
	cpu := NewCPU(bus)
	return &Console{cpu: cpu, ppu: ppu, bus: bus, controller: controller}
}

// Reset returns the CPU and PPU to their post-power-on state.
func (c *Console) Reset() {
	c.cpu.Reset()
	c.ppu.Reset()
}

// SetButtons latches the current controller button state for the next
// strobe/read sequence.
func (c *Console) SetButtons(buttons [8]bool) {
	c.controller.Set(buttons)
}

// Step runs one CPU instruction (or stall/interrupt-dispatch cycle) and
// the matching PPU dots, at the fixed 1:3 clock ratio, and returns the
// CPU cycle count consumed.
func (c *Console) Step() int {
	cycles := c.cpu.Step()
	c.bus.StepPPU(cycles * 3)
	return cycles
}

// frameCycleBudget is the number of CPU cycles in one 60 Hz frame:
// CPUFrequency / 60 = 1,789,773 / 60 = 29,829.55, truncated to a whole
// CPU cycle.
const frameCycleBudget = 29829

// StepFrame runs approximately one frame's worth of CPU cycles and
// returns the rendered picture plus whether a new frame became available
// during this call.
func (c *Console) StepFrame() (*image.RGBA, bool) {
	budget := frameCycleBudget
	ready := false
	for budget > 0 {
		budget -= c.Step()
		if _, frameDone := c.ppu.Picture(); frameDone {
			ready = true
		}
	}
	picture, _ := c.ppu.Picture()
	return picture, ready
}
