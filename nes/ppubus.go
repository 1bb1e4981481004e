package nes

// ppuMemory is the PPU's own address space: CHR (via the mapper), two
// physical 1 KiB nametable banks mirrored per the cartridge's mirroring
// mode, and 32-byte palette RAM with its $3F10/14/18/1C aliasing.
//
// Address map (https://www.nesdev.org/wiki/PPU_memory_map):
//
//	$0000-$0FFF  Pattern table 0 (CHR)
//	$1000-$1FFF  Pattern table 1 (CHR)
//	$2000-$2FFF  Four logical 1 KiB nametables, two physical + mirroring
//	$3000-$3EFF  Mirror of $2000-$2EFF
//	$3F00-$3F1F  Palette RAM
//	$3F20-$3FFF  Mirrors of $3F00-$3F1F
type ppuMemory struct {
	cartridge *Cartridge
	nametable [2048]byte
	palette   [32]byte
}

func newPPUMemory(cartridge *Cartridge) *ppuMemory {
	return &ppuMemory{cartridge: cartridge}
}

// nametableIndex folds a $2000-$2FFF address onto one of the two physical
// 1 KiB banks according to the cartridge's mirroring mode.
func (m *ppuMemory) nametableIndex(address uint16) uint16 {
	address = (address - 0x2000) % 0x1000
	table := address / 0x0400 // 0..3 logical nametable
	offset := address % 0x0400
	var bank uint16
	switch m.cartridge.mirroring {
	case MirrorVertical:
		bank = table % 2
	default: // MirrorHorizontal
		bank = table / 2
	}
	return bank*0x0400 + offset
}

func (m *ppuMemory) paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) % 0x20
	switch index {
	case 0x10, 0x14, 0x18, 0x1C:
		index -= 0x10
	}
	return index
}

func (m *ppuMemory) read(address uint16) byte {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		return m.cartridge.mapper.ReadCHR(address)
	case address < 0x3F00:
		return m.nametable[m.nametableIndex(address)]
	default:
		return m.palette[m.paletteIndex(address)]
	}
}

func (m *ppuMemory) write(address uint16, data byte) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		m.cartridge.mapper.WriteCHR(address, data)
	case address < 0x3F00:
		m.nametable[m.nametableIndex(address)] = data
	default:
		m.palette[m.paletteIndex(address)] = data
	}
}
