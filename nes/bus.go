package nes

import "github.com/golang/glog"

// Bus is the CPU's view of the address space: 2 KiB work RAM mirrored four
// times, the PPU's eight memory-mapped registers mirrored across
// 0x2000-0x3FFF, OAM DMA at 0x4014, the controller port at 0x4016,
// cartridge WRAM at 0x6000-0x7FFF, and PRG ROM at 0x8000-0xFFFF. It is the
// only state CPU and PPU share; per the concurrency model they never run
// concurrently, so no locking is needed.
//
// No method here returns an error: every address resolves, unmapped reads
// fall back to the last byte driven onto the bus ("open bus"), matching the
// real hardware's behavior and this emulator's documented policy that bus
// access is total over its input space.
type Bus struct {
	wram       *RAM
	ppu        *PPU
	cartridge  *Cartridge
	controller *Controller
	openBus    byte
	warnedIO   bool
}

// NewBus creates the CPU bus over a freshly loaded cartridge.
func NewBus(ppu *PPU, cartridge *Cartridge, controller *Controller) *Bus {
	return &Bus{wram: NewRAM(), ppu: ppu, cartridge: cartridge, controller: controller}
}

func (b *Bus) Read(address uint16) byte {
	var data byte
	switch {
	case address < 0x2000:
		data = b.wram.read(address % 0x0800)
	case address < 0x4000:
		data = b.readPPURegister(0x2000 + (address-0x2000)%8)
	case address == 0x4016:
		data = b.controller.read()
	case address < 0x4020:
		// APU and remaining I/O registers are not emulated; reads fall
		// back to open bus.
		b.warnUnimplementedIO(address)
		data = b.openBus
	case address < 0x6000:
		data = b.openBus
	case address < 0x8000:
		data = b.cartridge.readWRAM(address)
	default:
		data = b.cartridge.mapper.ReadPRG(address)
	}
	b.openBus = data
	return data
}

// Read16 reads a little-endian word. It does not implement the indirect-JMP
// page-wrap bug; that quirk is local to the CPU's indirect addressing mode
// and implemented in cpu.go.
func (b *Bus) Read16(address uint16) uint16 {
	lo := uint16(b.Read(address))
	hi := uint16(b.Read(address + 1))
	return hi<<8 | lo
}

func (b *Bus) Write(address uint16, data byte) {
	b.openBus = data
	switch {
	case address < 0x2000:
		b.wram.write(address%0x0800, data)
	case address < 0x4000:
		b.writePPURegister(0x2000+(address-0x2000)%8, data)
	case address == 0x4016:
		b.controller.write(data)
	case address < 0x4020:
		b.warnUnimplementedIO(address)
	case address < 0x6000:
		// Unmapped; open bus only.
	case address < 0x8000:
		b.cartridge.writeWRAM(address, data)
	default:
		b.cartridge.mapper.WritePRG(address, data)
	}
}

func (b *Bus) warnUnimplementedIO(address uint16) {
	if b.warnedIO {
		return
	}
	b.warnedIO = true
	glog.Infof("nes: unimplemented I/O register access, address=0x%04x (subsequent accesses are not logged)", address)
}

func (b *Bus) readPPURegister(address uint16) byte {
	switch address {
	case 0x2002:
		return b.ppu.readStatus()
	case 0x2004:
		return b.ppu.readOAMData()
	case 0x2007:
		return b.ppu.readData()
	default:
		// Write-only registers read back as open bus.
		return b.openBus
	}
}

func (b *Bus) writePPURegister(address uint16, data byte) {
	switch address {
	case 0x2000:
		b.ppu.writeControl(data)
	case 0x2001:
		b.ppu.writeMask(data)
	case 0x2003:
		b.ppu.writeOAMAddress(data)
	case 0x2004:
		b.ppu.writeOAMData(data)
	case 0x2005:
		b.ppu.writeScroll(data)
	case 0x2006:
		b.ppu.writeAddress(data)
	case 0x2007:
		b.ppu.writeData(data)
	case 0x2002:
		// PPUSTATUS is read-only; writes are ignored (open bus already latched above).
	}
}

// writeOAMDMA copies 256 bytes from CPU page `page<<8` into OAM, starting
// at the current OAMADDR and wrapping. Called by the CPU, which also
// charges the stall cycles this consumes.
func (b *Bus) writeOAMDMA(page byte) {
	base := uint16(page) << 8
	var data [256]byte
	for i := 0; i < 256; i++ {
		data[i] = b.Read(base + uint16(i))
	}
	b.ppu.writeOAMDMA(data)
}

// TakeNMI reports and clears a pending NMI request raised by the PPU.
func (b *Bus) TakeNMI() bool {
	return b.ppu.TakeNMI()
}

// StepPPU advances the PPU by the given number of dots, called 3 per CPU
// cycle per the shared clock ratio documented in console.go.
func (b *Bus) StepPPU(dots int) {
	for i := 0; i < dots; i++ {
		b.ppu.Step()
	}
}
