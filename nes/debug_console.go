package nes

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Debugger wraps a Console with an interactive stdin command loop.
// commands:
//
//	s [num][unit]: step num instructions ('d' unit also prints each step, 's' unit steps num seconds worth of cycles)
//	p [cpu|ppu|cartridge|controller|wram]: print state
//	br 0xADDR: set a breakpoint on PC
//	r: reset
//	q: quit
type Debugger struct {
	console     *Console
	cycles      uint64
	breakpoints []uint16
}

// NewDebugger wraps an existing console for interactive stepping.
func NewDebugger(console *Console) *Debugger {
	return &Debugger{console: console}
}

func (d *Debugger) step() int {
	cycles := d.console.Step()
	d.cycles += uint64(cycles)
	return cycles
}

func (d *Debugger) basePrint() {
	c := d.console
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Executed cycles: %d\n", d.cycles)
	fmt.Println("Last: " + c.cpu.lastExecution)
	fmt.Printf("CPU:  PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x, P=0x%02x\n",
		c.cpu.PC, c.cpu.A, c.cpu.X, c.cpu.Y, c.cpu.S, c.cpu.P.encode())
	fmt.Printf("PPU: cycle=%d, scanline=%d, v=0x%04x\n",
		c.ppu.cycle, c.ppu.scanline, c.ppu.v)
}

func (d *Debugger) printCommand(args []string) {
	c := d.console
	if len(args) < 2 {
		d.basePrint()
		return
	}
	switch args[1] {
	case "c", "cpu":
		fmt.Printf("%+v\n", *c.cpu)
	case "p", "ppu":
		fmt.Printf("%+v\n", *c.ppu)
	case "ca", "cartridge":
		fmt.Printf("%+v\n", *c.bus.cartridge)
	case "ct", "controller":
		fmt.Printf("%+v\n", *c.controller)
	case "wr", "wram":
		fmt.Printf("%+v\n", *c.bus.wram)
	}
}

func (d *Debugger) checkBreak() bool {
	for _, bp := range d.breakpoints {
		if bp == d.console.cpu.PC {
			fmt.Printf("Break at: 0x%04x\n", bp)
			return true
		}
	}
	return false
}

func (d *Debugger) stepCommand(args []string) int {
	if len(args) < 2 {
		return d.step()
	}
	re := regexp.MustCompile("^([0-9]+)")
	if !re.MatchString(args[1]) {
		return 0
	}
	num, _ := strconv.Atoi(re.FindString(args[1]))
	unit := args[1][len(args[1])-1]
	cycles := 0
	switch unit {
	case 's':
		// Seconds of CPU-clock time, i.e. CPUFrequency*num cycles.
		target := CPUFrequency * num
		for cycles < target {
			cycles += d.step()
			if d.checkBreak() {
				return cycles
			}
		}
	case 'd':
		for i := 0; i < num; i++ {
			cycles += d.step()
			d.basePrint()
			if d.checkBreak() {
				return cycles
			}
		}
	default:
		for i := 0; i < num; i++ {
			cycles += d.step()
			if d.checkBreak() {
				return cycles
			}
		}
	}
	return cycles
}

func (d *Debugger) breakPointCommand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("nes: br requires an address, e.g. br 0x8000")
	}
	var i int
	if _, err := fmt.Sscanf(args[1], "0x%x", &i); err != nil {
		return fmt.Errorf("nes: invalid breakpoint address %q: %w", args[1], err)
	}
	d.breakpoints = append(d.breakpoints, uint16(i))
	return nil
}

// Run starts the interactive command loop, reading one command per line
// until "q"/"quit" or EOF.
func (d *Debugger) Run() error {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("debugger, 'q' to quit\n>> ")
		line, err := in.ReadString('\n')
		if err != nil {
			return err
		}
		args := strings.Split(strings.TrimSuffix(line, "\n"), " ")
		switch args[0] {
		case "p", "print":
			d.printCommand(args)
		case "s", "step":
			cycles := d.stepCommand(args)
			d.basePrint()
			fmt.Printf("Executed %d CPU cycles, %d PPU dots.\n", cycles, 3*cycles)
		case "br", "breakpoint":
			if err := d.breakPointCommand(args); err != nil {
				fmt.Println(err)
			}
		case "r", "reset":
			d.console.Reset()
		case "q", "quit":
			fmt.Println("Quitting.")
			return nil
		default:
			fmt.Printf("unknown command %q\n", args[0])
		}
	}
}
