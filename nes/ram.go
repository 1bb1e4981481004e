package nes

type RAM struct {
	data [2048]byte
}

// NewRAM creates the CPU's 2 KiB work RAM.
func NewRAM() *RAM {
	return &RAM{}
}

// read reads data
func (r *RAM) read(address uint16) byte {
	return r.data[address]
}

// write writes data
func (r *RAM) write(address uint16, x byte) {
	r.data[address] = x
}
