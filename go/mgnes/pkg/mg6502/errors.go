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

import "fmt"

// UndefinedOpcodeError is panicked by fetchStep when the opcode byte has no
// table entry. Some software relies on undocumented opcodes; widen the
// table rather than catching this if that matters to a given ROM.
type UndefinedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UndefinedOpcodeError) Error() string {
	return fmt.Sprintf("mg6502: undefined opcode %#02x at pc %#04x", e.Opcode, e.PC)
}

// WriteToReadOnlyError describes a write that lands in the cartridge PRG
// window. The Debug-gated check in CPU.write logs a line with the same text
// (it does not panic) and does not construct a value of this type.
type WriteToReadOnlyError struct {
	Addr uint16
}

func (e *WriteToReadOnlyError) Error() string {
	return fmt.Sprintf("mg6502: write to read-only address %#04x", e.Addr)
}
