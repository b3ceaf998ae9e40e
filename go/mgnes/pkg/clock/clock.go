// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package clock owns the CPU and PPU outright and advances them at the
// console's fixed 1:3 CPU:PPU ratio, leaving OAM-DMA stalls and interrupt
// wiring to the Bus and CPU respectively.
package clock

import (
	"github.com/master-g/nescore/go/mgnes/pkg/bus"
	"github.com/master-g/nescore/go/mgnes/pkg/cartridge"
	"github.com/master-g/nescore/go/mgnes/pkg/mg2c02"
	"github.com/master-g/nescore/go/mgnes/pkg/mg6502"
)

// Driver is the top-level console: one CPU, one PPU, one bus between
// them, advanced dot by dot.
type Driver struct {
	CPU *mg6502.CPU
	PPU *mg2c02.PPU
	Bus *bus.Bus

	ppuDot int
}

// New builds a fresh console with no cartridge inserted.
func New() *Driver {
	b := bus.New()
	ppu := mg2c02.New()
	b.AttachPPU(ppu)
	cpu := mg6502.New(b)

	return &Driver{
		CPU: cpu,
		PPU: ppu,
		Bus: b,
	}
}

// InsertCartridge attaches a cartridge to the bus and PPU.
func (d *Driver) InsertCartridge(cart *cartridge.Cartridge) {
	d.Bus.InsertCartridge(cart)
}

// TriggerNMI raises the CPU's NMI latch, normally called by the PPU's
// vblank edge.
func (d *Driver) TriggerNMI() {
	d.CPU.TriggerNMI()
}

// TriggerIRQ raises the CPU's IRQ line.
func (d *Driver) TriggerIRQ() {
	d.CPU.TriggerIRQ()
}

// ClearIRQ lowers the CPU's IRQ line.
func (d *Driver) ClearIRQ() {
	d.CPU.ClearIRQ()
}

// TriggerReset requests a RESET sequence on the next CPU fetch boundary.
func (d *Driver) TriggerReset() {
	d.CPU.Reset()
}

// Tick advances the system by one PPU dot. Every third dot is a CPU-rate
// tick: either an OAM-DMA cycle, if one is in flight, or a CPU Step. It
// reports whether this call actually invoked CPU.Step, which only happens
// on one in every three calls (and not at all while a DMA transfer is
// stealing the CPU-rate tick) — callers that need to observe a full
// instruction boundary must track this rather than Complete() alone, since
// Complete() reads stale (already-true) between CPU-stepping ticks.
func (d *Driver) Tick() bool {
	d.PPU.Step()
	if d.PPU.PollVBlankEdge() {
		d.CPU.TriggerNMI()
	}

	d.ppuDot++
	if d.ppuDot%3 != 0 {
		return false
	}

	if d.Bus.DMAInProgress() {
		d.Bus.StepDMA()
		return false
	}
	d.Bus.NotifyCPUCycle()
	d.CPU.Step()
	return true
}

// RunInstruction ticks the driver until the CPU has actually stepped at
// least once and has completed a full instruction or interrupt sequence
// (Complete reports true), used by debuggers stepping one opcode at a
// time. Complete() alone is not a sufficient loop condition: it is true
// on entry whenever the driver is between instructions, which is also the
// state it's in for the two out of every three Tick calls that land on a
// non-CPU-rate PPU dot.
func (d *Driver) RunInstruction() {
	steppedCPU := false
	for !steppedCPU || !d.CPU.Complete() {
		if d.Tick() {
			steppedCPU = true
		}
	}
}
