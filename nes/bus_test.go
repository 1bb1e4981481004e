package nes

import "testing"

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	prg := make([]byte, 0x4000)
	mapper, err := NewMapper(0, prg, nil)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	cartridge := &Cartridge{mapper: mapper}
	return NewBus(NewPPU(cartridge), cartridge, NewController())
}

func TestBusWRAMMirroring(t *testing.T) {
	bus := newTestBus(t)
	bus.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := bus.Read(mirror); got != 0x42 {
			t.Errorf("read 0x%04x: got=0x%02x, want=0x42", mirror, got)
		}
	}
}

func TestBusOpenBusFallback(t *testing.T) {
	bus := newTestBus(t)
	bus.Write(0x0000, 0x77) // drives the bus
	if got := bus.Read(0x4018); got != 0x77 {
		t.Errorf("unmapped I/O read: got=0x%02x, want=0x77 (last driven byte)", got)
	}
}

func TestBusOAMDMA(t *testing.T) {
	bus := newTestBus(t)
	for i := 0; i < 256; i++ {
		bus.Write(0x0000+uint16(i), byte(i))
	}
	bus.writeOAMDMA(0x00) // page 0 -> WRAM, mirrors of 0x0000-0x00FF
	for i := 0; i < 256; i++ {
		if got := bus.ppu.oam[i]; got != byte(i) {
			t.Fatalf("oam[%d]: got=0x%02x, want=0x%02x", i, got, byte(i))
		}
	}
}

func TestBusOAMDMAWrapsFromOAMADDR(t *testing.T) {
	bus := newTestBus(t)
	bus.ppu.writeOAMAddress(0xFF)
	for i := 0; i < 256; i++ {
		bus.Write(0x0000+uint16(i), 1) // page of all-1s
	}
	bus.writeOAMDMA(0x00)
	if bus.ppu.oam[0xFF] != 1 || bus.ppu.oam[0] != 1 {
		t.Fatalf("OAM DMA should wrap starting at OAMADDR=0xFF")
	}
}

func TestBusControllerRoundTrip(t *testing.T) {
	bus := newTestBus(t)
	var buttons [8]bool
	buttons[ButtonA] = true
	bus.controller.Set(buttons)
	bus.Write(0x4016, 0) // strobe low
	if got := bus.Read(0x4016); got != 1 {
		t.Fatalf("first controller read: got=%d, want=1 (A is pressed)", got)
	}
	if got := bus.Read(0x4016); got != 0 {
		t.Fatalf("second controller read: got=%d, want=0", got)
	}
}

func TestCPUWriteChargesOAMDMAStall(t *testing.T) {
	bus := newTestBus(t)
	cpu := NewCPU(bus)
	cpu.cycles = 0 // even, so DMA costs 513 cycles (CPU.write adds 1 more only on an odd cycle)
	cpu.write(0x4014, 0x00)
	if cpu.stall != 513 {
		t.Fatalf("stall: got=%d, want=513", cpu.stall)
	}
}
