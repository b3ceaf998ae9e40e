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

// Package cartridge represents a loaded NES cartridge image: PRG/CHR banks,
// the mirroring mode, and the mapper that decodes CPU/PPU addresses into
// bank offsets.
package cartridge

import (
	"github.com/master-g/nescore/go/mgnes/pkg/ines"
	"github.com/master-g/nescore/go/mgnes/pkg/mappers"
)

// Cartridge represents a NES cartridge from a software perspective.
type Cartridge struct {
	Mirroring  ines.MirroringDirection
	FourScreen bool
	Battery    bool
	NES20      bool

	mapperID    uint8
	numPRGBanks uint8
	numCHRBanks uint8

	memPRG []uint8
	memCHR []uint8

	mapper mappers.Mapper
}

// CpuRead resolves a CPU-side address (0x8000-0xFFFF, per the mapper's
// window) through the mapper into the PRG bank array.
func (cart *Cartridge) CpuRead(addr uint16) (data uint8, ok bool) {
	var mappedAddr uint32
	if mappedAddr, ok = cart.mapper.CpuMapRead(addr); ok {
		data = cart.memPRG[mappedAddr]
	}
	return
}

// CpuWrite resolves and performs a CPU-side write. Mapper 0 has no
// writable PRG window, so this is always a no-op veto for the one mapper
// this core supports; it exists for mappers with onboard RAM.
func (cart *Cartridge) CpuWrite(addr uint16, data uint8) (ok bool) {
	var mappedAddr uint32
	if mappedAddr, ok = cart.mapper.CpuMapWrite(addr); ok {
		cart.memPRG[mappedAddr] = data
	}
	return
}

// PpuRead resolves a PPU-side pattern-table address into the CHR bank
// array.
func (cart *Cartridge) PpuRead(addr uint16) (data uint8, ok bool) {
	var mappedAddr uint32
	if mappedAddr, ok = cart.mapper.PpuMapRead(addr); ok {
		data = cart.memCHR[mappedAddr]
	}
	return
}

// PpuWrite resolves a PPU-side pattern-table write, only meaningful when
// CHR is RAM-backed (zero CHR banks in the header).
func (cart *Cartridge) PpuWrite(addr uint16, data uint8) (ok bool) {
	var mappedAddr uint32
	if mappedAddr, ok = cart.mapper.PpuMapWrite(addr); ok {
		cart.memCHR[mappedAddr] = data
	}
	return
}

// MapperID reports the iNES mapper number this cartridge was built for.
func (cart *Cartridge) MapperID() uint8 { return cart.mapperID }

// PRGBanks reports the number of 16 KiB PRG-ROM banks.
func (cart *Cartridge) PRGBanks() uint8 { return cart.numPRGBanks }

// CHRBanks reports the number of 8 KiB CHR-ROM banks.
func (cart *Cartridge) CHRBanks() uint8 { return cart.numCHRBanks }
