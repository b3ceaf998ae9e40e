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

// Package bus decodes the CPU's address space: RAM mirroring, the PPU
// register window, the OAM-DMA trigger, the controller ports, and the
// cartridge passthrough. It satisfies mg6502.Bus so a *bus.Bus can be
// handed straight to mg6502.New.
package bus

import (
	"github.com/master-g/nescore/go/mgnes/pkg/cartridge"
	"github.com/master-g/nescore/go/mgnes/pkg/log"
	"github.com/master-g/nescore/go/mgnes/pkg/memory"
	"github.com/master-g/nescore/go/mgnes/pkg/mg2c02"
)

// dmaState tracks an in-flight OAM-DMA transfer. alignRemaining counts the
// one or two dummy cycles hardware spends before the first read, depending
// on whether the transfer began on an odd CPU cycle.
type dmaState struct {
	active         bool
	page           uint8
	addr           uint8
	alignRemaining uint8
	readPending    bool
	buffer         uint8
}

// Bus wires CPU-visible RAM, the PPU register facade, and a cartridge
// together. It does not own a CPU or PPU clock loop itself; pkg/clock
// drives both at the 1:3 ratio and calls StepDMA here on the CPU's behalf.
type Bus struct {
	ram  memory.Memory
	ppu  *mg2c02.PPU
	cart *cartridge.Cartridge

	controller      [2]uint8
	controllerLatch [2]uint8

	cpuCycle uint64
	dma      dmaState
}

// New constructs a Bus with fresh 2 KiB CPU RAM and no cartridge or PPU
// attached yet.
func New() *Bus {
	return &Bus{
		ram: memory.NewCpuMemory(),
	}
}

// AttachPPU wires the PPU this bus forwards register window traffic to.
func (bus *Bus) AttachPPU(ppu *mg2c02.PPU) {
	bus.ppu = ppu
}

// InsertCartridge attaches a cartridge and hands its CHR banks to the PPU.
func (bus *Bus) InsertCartridge(cart *cartridge.Cartridge) {
	bus.cart = cart
	if bus.ppu != nil {
		bus.ppu.AttachCartridge(cart)
	}
}

// SetController latches an 8-button state snapshot for the given port
// (0 or 1), read out one bit per 0x4016/0x4017 read.
func (bus *Bus) SetController(port int, buttons uint8) {
	bus.controller[port] = buttons
}

// Read satisfies mg6502.Bus.
func (bus *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return bus.ram.Read(addr)
	case addr >= 0x2000 && addr <= 0x3FFF:
		return bus.ppu.Read(uint8(addr & 0x0007))
	case addr == 0x4016 || addr == 0x4017:
		port := addr - 0x4016
		bit := (bus.controllerLatch[port] & 0x80) >> 7
		bus.controllerLatch[port] <<= 1
		return bit
	case addr >= 0x4000 && addr <= 0x4015:
		return 0 // APU and I/O registers: not modeled
	default:
		if bus.cart != nil {
			if data, ok := bus.cart.CpuRead(addr); ok {
				return data
			}
		}
		return 0
	}
}

// Write satisfies mg6502.Bus.
func (bus *Bus) Write(addr uint16, data uint8) {
	switch {
	case addr <= 0x1FFF:
		bus.ram.Write(addr, data)
	case addr >= 0x2000 && addr <= 0x3FFF:
		bus.ppu.Write(uint8(addr&0x0007), data)
	case addr == 0x4014:
		bus.beginDMA(data)
	case addr == 0x4016:
		bus.controllerLatch[0] = bus.controller[0]
	case addr == 0x4017:
		bus.controllerLatch[1] = bus.controller[1]
	case addr >= 0x4000 && addr <= 0x4015:
		// APU registers: not modeled
	default:
		if bus.cart != nil {
			if !bus.cart.CpuWrite(addr, data) {
				log.L("bus: write to read-only address %#04x", addr)
			}
		}
	}
}

func (bus *Bus) beginDMA(page uint8) {
	bus.dma = dmaState{
		active:         true,
		page:           page,
		alignRemaining: 1,
	}
	if bus.cpuCycle%2 == 1 {
		bus.dma.alignRemaining = 2
	}
}

// DMAInProgress reports whether an OAM-DMA transfer is consuming CPU
// cycles this tick.
func (bus *Bus) DMAInProgress() bool {
	return bus.dma.active
}

// StepDMA advances one CPU-rate tick of an in-flight OAM-DMA transfer. The
// Clock Driver calls this instead of stepping the CPU whenever
// DMAInProgress reports true. It always accounts for the tick against the
// CPU-cycle parity counter used to decide the alignment delay of the next
// transfer.
func (bus *Bus) StepDMA() {
	bus.cpuCycle++
	if !bus.dma.active {
		return
	}
	if bus.dma.alignRemaining > 0 {
		bus.dma.alignRemaining--
		return
	}
	if !bus.dma.readPending {
		bus.dma.buffer = bus.ram.Read(uint16(bus.dma.page)<<8 | uint16(bus.dma.addr))
		bus.dma.readPending = true
		return
	}
	bus.ppu.WriteOAM(bus.dma.addr, bus.dma.buffer)
	bus.dma.readPending = false
	bus.dma.addr++
	if bus.dma.addr == 0 {
		bus.dma.active = false
	}
}

// NotifyCPUCycle advances the CPU-cycle parity counter when no DMA is in
// progress, so a DMA requested later still sees the right odd/even start.
func (bus *Bus) NotifyCPUCycle() {
	bus.cpuCycle++
}
