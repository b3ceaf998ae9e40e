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

package mappers

import "fmt"

// Mapper translates CPU/PPU addresses into offsets within a cartridge's
// PRG/CHR banks. A flag return of false means the address does not belong
// to this mapper's window and the caller should try elsewhere (RAM, PPU
// registers, ...).
type Mapper interface {
	CpuMapRead(addr uint16) (mappedAddr uint32, ok bool)
	CpuMapWrite(addr uint16) (mappedAddr uint32, ok bool)
	PpuMapRead(addr uint16) (mappedAddr uint32, ok bool)
	PpuMapWrite(addr uint16) (mappedAddr uint32, ok bool)
}

// HeaderInfo is the subset of an iNES header a mapper constructor needs.
// Defined here, rather than importing pkg/ines, to keep this package free
// of a dependency on the cartridge-loading stack.
type HeaderInfo struct {
	MapperID    uint8
	NumPRGBanks uint8
	NumCHRBanks uint8
}

// Create returns the Mapper for the given header. This specification
// targets mapper 0 (fixed, no bank switching) only; any other mapper
// number is a load-time error rather than a silent best-effort mapping.
func Create(h HeaderInfo) (Mapper, error) {
	switch h.MapperID {
	case 0:
		return NewMapper000(h.NumPRGBanks, h.NumCHRBanks), nil
	default:
		return nil, fmt.Errorf("mappers: mapper %d not implemented", h.MapperID)
	}
}
