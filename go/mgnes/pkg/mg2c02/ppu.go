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

// Package mg2c02 models the PPU's CPU-visible register window and its
// scanline/dot timing envelope: enough to raise vblank, fire NMI, and
// answer the eight memory-mapped registers the CPU pokes at. The actual
// pixel-generation pipeline is out of scope.
package mg2c02

import (
	"github.com/master-g/nescore/go/mgnes/pkg/cartridge"
	"github.com/master-g/nescore/go/mgnes/pkg/ines"
)

const (
	scanlinesPerFrame = 262
	dotsPerScanline   = 341
	vblankScanline    = 241
	preRenderScanline = 261
)

// PPU is the 2C02 register facade plus timing counters.
type PPU struct {
	cart *cartridge.Cartridge

	nametable [2][1024]uint8
	palette   [32]uint8
	oam       [256]uint8

	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	addrLatch  bool // the "w" toggle shared by 0x2005/0x2006
	vramAddr   uint16
	tmpAddr    uint16
	dataBuffer uint8

	scanline int
	dot      int

	nmiEdge bool
}

// New constructs a PPU with no cartridge attached yet.
func New() *PPU {
	return &PPU{scanline: preRenderScanline}
}

// AttachCartridge wires the PPU to the cartridge's CHR banks and mirroring
// mode. The PPU never owns cartridge state; it only decodes addresses
// through it.
func (p *PPU) AttachCartridge(cart *cartridge.Cartridge) {
	p.cart = cart
}

// Status register bits.
const (
	statusOverflow uint8 = 0x20
	statusSprite0  uint8 = 0x40
	statusVBlank   uint8 = 0x80
)

// Write dispatches a CPU-side register write by index (0-7), per the
// 0x2000-0x2007 window.
func (p *PPU) Write(reg uint8, data uint8) {
	switch reg {
	case 0:
		p.ctrl = data
	case 1:
		p.mask = data
	case 2:
		// status is read-only; ignored
	case 3:
		p.oamAddr = data
	case 4:
		p.oam[p.oamAddr] = data
		p.oamAddr++
	case 5:
		// scroll: two writes latched via addrLatch, X then Y.
		p.addrLatch = !p.addrLatch
	case 6:
		if !p.addrLatch {
			p.tmpAddr = (p.tmpAddr & 0x00FF) | (uint16(data&0x3F) << 8)
		} else {
			p.tmpAddr = (p.tmpAddr & 0xFF00) | uint16(data)
			p.vramAddr = p.tmpAddr
		}
		p.addrLatch = !p.addrLatch
	case 7:
		p.vramWrite(p.vramAddr, data)
		p.vramAddr += p.addrIncrement()
	}
}

// Read dispatches a CPU-side register read by index. Reading status
// (index 2) clears the vblank flag and the address latch toggle; reading
// data (index 7) is buffered except within the palette range.
func (p *PPU) Read(reg uint8) uint8 {
	switch reg {
	case 2:
		result := p.status
		p.status &^= statusVBlank
		p.addrLatch = false
		return result
	case 4:
		return p.oam[p.oamAddr]
	case 7:
		if p.vramAddr >= 0x3F00 {
			p.dataBuffer = p.vramRead(p.vramAddr - 0x1000)
			result := p.vramRead(p.vramAddr)
			p.vramAddr += p.addrIncrement()
			return result
		}
		result := p.dataBuffer
		p.dataBuffer = p.vramRead(p.vramAddr)
		p.vramAddr += p.addrIncrement()
		return result
	default:
		return 0
	}
}

func (p *PPU) addrIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

// WriteOAM is the DMA target write the Bus drives 256 times per
// OAM-DMA transfer, one byte per source RAM offset.
func (p *PPU) WriteOAM(offset uint8, data uint8) {
	p.oam[offset] = data
}

// vblankEnabled reports whether control register bit 7 (NMI on vblank) is
// set.
func (p *PPU) vblankEnabled() bool {
	return p.ctrl&0x80 != 0
}

// PollVBlankEdge reports and clears a pending vblank-entry edge, used by
// the Clock Driver to decide whether to raise NMI this tick.
func (p *PPU) PollVBlankEdge() bool {
	if p.nmiEdge {
		p.nmiEdge = false
		return true
	}
	return false
}

// Step advances the PPU by one dot, raising vblank at scanline 241 dot 1
// and clearing it (plus sprite-0/overflow) at the pre-render line.
func (p *PPU) Step() {
	p.dot++
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
		}
	}

	switch {
	case p.scanline == vblankScanline && p.dot == 1:
		p.status |= statusVBlank
		if p.vblankEnabled() {
			p.nmiEdge = true
		}
	case p.scanline == preRenderScanline && p.dot == 1:
		p.status &^= (statusVBlank | statusSprite0 | statusOverflow)
	}
}

func (p *PPU) nametableMirror(addr uint16) int {
	idx := int(addr&0x0FFF) / 0x0400
	switch p.cart.Mirroring {
	case ines.MirroringVertical:
		return []int{0, 1, 0, 1}[idx]
	default: // horizontal
		return []int{0, 0, 1, 1}[idx]
	}
}

func (p *PPU) vramRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		v, _ := p.cart.PpuRead(addr)
		return v
	case addr < 0x3F00:
		table := p.nametableMirror(addr)
		return p.nametable[table][addr&0x03FF]
	default:
		return p.palette[paletteIndex(addr)]
	}
}

func (p *PPU) vramWrite(addr uint16, v uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.PpuWrite(addr, v)
	case addr < 0x3F00:
		table := p.nametableMirror(addr)
		p.nametable[table][addr&0x03FF] = v
	default:
		p.palette[paletteIndex(addr)] = v
	}
}

// paletteIndex applies the special 0x3F10/14/18/1C alias rule: those four
// addresses mirror 0x3F00/04/08/0C.
func paletteIndex(addr uint16) uint16 {
	idx := addr & 0x001F
	if idx >= 0x10 && idx%4 == 0 {
		idx -= 0x10
	}
	return idx
}
