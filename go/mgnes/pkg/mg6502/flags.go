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

package mg6502

// Status register bit positions.
const (
	// FlagCarry C
	FlagCarry uint8 = 0x01
	// FlagZero Z
	FlagZero uint8 = 0x02
	// FlagInterrupt I, interrupt disable
	FlagInterrupt uint8 = 0x04
	// FlagDecimal D, settable/clearable but never consulted by ADC/SBC on this platform
	FlagDecimal uint8 = 0x08
	// FlagBreak B, exists only in pushed copies of P
	FlagBreak uint8 = 0x10
	// FlagReserved U, always reads back as 1
	FlagReserved uint8 = 0x20
	// FlagOverflow V
	FlagOverflow uint8 = 0x40
	// FlagNegative N
	FlagNegative uint8 = 0x80
)

// GetFlag returns 1 if the named bit is set in P, 0 otherwise.
func (cpu *CPU) GetFlag(flag uint8) uint8 {
	if cpu.P&flag != 0 {
		return 1
	}
	return 0
}

// SetFlag sets or clears the named bit of P.
func (cpu *CPU) SetFlag(flag uint8, set bool) {
	if set {
		cpu.P |= flag
	} else {
		cpu.P &^= flag
	}
}

// setNZ sets Negative and Zero from an 8-bit result, as every load/transfer/
// inc/dec instruction does.
func (cpu *CPU) setNZ(v uint8) {
	cpu.SetFlag(FlagZero, v == 0)
	cpu.SetFlag(FlagNegative, v&0x80 != 0)
}
