package nes

import "fmt"

// Mapper adapts a cartridge's PRG/CHR storage into the CPU and PPU address
// spaces. Only mapper 0 (NROM) is implemented; larger mappers are a
// documented non-goal.
type Mapper interface {
	ReadPRG(address uint16) byte
	WritePRG(address uint16, data byte)
	ReadCHR(address uint16) byte
	WriteCHR(address uint16, data byte)
}

// NewMapper builds the Mapper for the given iNES mapper number. Any number
// other than 0 is rejected; the caller (cartridge loading) turns that into a
// load error.
func NewMapper(number byte, prgROM []byte, chrROM []byte) (Mapper, error) {
	switch number {
	case 0:
		return newMapper0(prgROM, chrROM), nil
	default:
		return nil, fmt.Errorf("unsupported mapper %d", number)
	}
}
