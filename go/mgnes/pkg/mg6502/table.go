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

// Destination records whether an instruction's result lands in a register
// (the core mutates CPU state directly) or in memory (the template writes
// the core's return value back to the target address). It is informational
// for tracing; dispatch itself is driven by which Template a table entry
// names.
type Destination uint8

const (
	DestRegister Destination = iota
	DestMemory
)

// Instruction is one dense entry of the 256-slot opcode table: a mnemonic
// for tracing, the addressing template, the operation core, the semantic
// destination, and the base cycle count before any page-cross/branch
// extension.
type Instruction struct {
	Name       string
	Template   Template
	Core       Core
	Dest       Destination
	BaseCycles uint8
}

func def(name string, tmpl Template, core Core, dst Destination, cycles uint8) *Instruction {
	return &Instruction{Name: name, Template: tmpl, Core: core, Dest: dst, BaseCycles: cycles}
}

// opcodeTable is the dense 256-entry opcode-to-instruction map. Absent
// (nil) entries are undefined opcodes; 0x00 (BRK) is intentionally absent,
// captured instead at FETCH per the state machine.
var opcodeTable [256]*Instruction

func init() {
	t := &opcodeTable

	// ORA
	t[0x01] = def("ORA", tmplIndXRead, coreORA, DestRegister, 6)
	t[0x05] = def("ORA", tmplZPRead, coreORA, DestRegister, 3)
	t[0x09] = def("ORA", tmplImmediate, coreORA, DestRegister, 2)
	t[0x0D] = def("ORA", tmplAbsRead, coreORA, DestRegister, 4)
	t[0x11] = def("ORA", tmplIndYRead, coreORA, DestRegister, 5)
	t[0x15] = def("ORA", tmplZPXRead, coreORA, DestRegister, 4)
	t[0x19] = def("ORA", tmplAbsYRead, coreORA, DestRegister, 4)
	t[0x1D] = def("ORA", tmplAbsXRead, coreORA, DestRegister, 4)

	// AND
	t[0x21] = def("AND", tmplIndXRead, coreAND, DestRegister, 6)
	t[0x25] = def("AND", tmplZPRead, coreAND, DestRegister, 3)
	t[0x29] = def("AND", tmplImmediate, coreAND, DestRegister, 2)
	t[0x2D] = def("AND", tmplAbsRead, coreAND, DestRegister, 4)
	t[0x31] = def("AND", tmplIndYRead, coreAND, DestRegister, 5)
	t[0x35] = def("AND", tmplZPXRead, coreAND, DestRegister, 4)
	t[0x39] = def("AND", tmplAbsYRead, coreAND, DestRegister, 4)
	t[0x3D] = def("AND", tmplAbsXRead, coreAND, DestRegister, 4)

	// EOR
	t[0x41] = def("EOR", tmplIndXRead, coreEOR, DestRegister, 6)
	t[0x45] = def("EOR", tmplZPRead, coreEOR, DestRegister, 3)
	t[0x49] = def("EOR", tmplImmediate, coreEOR, DestRegister, 2)
	t[0x4D] = def("EOR", tmplAbsRead, coreEOR, DestRegister, 4)
	t[0x51] = def("EOR", tmplIndYRead, coreEOR, DestRegister, 5)
	t[0x55] = def("EOR", tmplZPXRead, coreEOR, DestRegister, 4)
	t[0x59] = def("EOR", tmplAbsYRead, coreEOR, DestRegister, 4)
	t[0x5D] = def("EOR", tmplAbsXRead, coreEOR, DestRegister, 4)

	// ADC
	t[0x61] = def("ADC", tmplIndXRead, coreADC, DestRegister, 6)
	t[0x65] = def("ADC", tmplZPRead, coreADC, DestRegister, 3)
	t[0x69] = def("ADC", tmplImmediate, coreADC, DestRegister, 2)
	t[0x6D] = def("ADC", tmplAbsRead, coreADC, DestRegister, 4)
	t[0x71] = def("ADC", tmplIndYRead, coreADC, DestRegister, 5)
	t[0x75] = def("ADC", tmplZPXRead, coreADC, DestRegister, 4)
	t[0x79] = def("ADC", tmplAbsYRead, coreADC, DestRegister, 4)
	t[0x7D] = def("ADC", tmplAbsXRead, coreADC, DestRegister, 4)

	// STA
	t[0x81] = def("STA", tmplIndXWrite, coreSTA, DestMemory, 6)
	t[0x85] = def("STA", tmplZPWrite, coreSTA, DestMemory, 3)
	t[0x8D] = def("STA", tmplAbsWrite, coreSTA, DestMemory, 4)
	t[0x91] = def("STA", tmplIndYWrite, coreSTA, DestMemory, 6)
	t[0x95] = def("STA", tmplZPXWrite, coreSTA, DestMemory, 4)
	t[0x99] = def("STA", tmplAbsYWrite, coreSTA, DestMemory, 5)
	t[0x9D] = def("STA", tmplAbsXWrite, coreSTA, DestMemory, 5)

	// LDA
	t[0xA1] = def("LDA", tmplIndXRead, coreLDA, DestRegister, 6)
	t[0xA5] = def("LDA", tmplZPRead, coreLDA, DestRegister, 3)
	t[0xA9] = def("LDA", tmplImmediate, coreLDA, DestRegister, 2)
	t[0xAD] = def("LDA", tmplAbsRead, coreLDA, DestRegister, 4)
	t[0xB1] = def("LDA", tmplIndYRead, coreLDA, DestRegister, 5)
	t[0xB5] = def("LDA", tmplZPXRead, coreLDA, DestRegister, 4)
	t[0xB9] = def("LDA", tmplAbsYRead, coreLDA, DestRegister, 4)
	t[0xBD] = def("LDA", tmplAbsXRead, coreLDA, DestRegister, 4)

	// CMP
	t[0xC1] = def("CMP", tmplIndXRead, coreCMP, DestRegister, 6)
	t[0xC5] = def("CMP", tmplZPRead, coreCMP, DestRegister, 3)
	t[0xC9] = def("CMP", tmplImmediate, coreCMP, DestRegister, 2)
	t[0xCD] = def("CMP", tmplAbsRead, coreCMP, DestRegister, 4)
	t[0xD1] = def("CMP", tmplIndYRead, coreCMP, DestRegister, 5)
	t[0xD5] = def("CMP", tmplZPXRead, coreCMP, DestRegister, 4)
	t[0xD9] = def("CMP", tmplAbsYRead, coreCMP, DestRegister, 4)
	t[0xDD] = def("CMP", tmplAbsXRead, coreCMP, DestRegister, 4)

	// SBC
	t[0xE1] = def("SBC", tmplIndXRead, coreSBC, DestRegister, 6)
	t[0xE5] = def("SBC", tmplZPRead, coreSBC, DestRegister, 3)
	t[0xE9] = def("SBC", tmplImmediate, coreSBC, DestRegister, 2)
	t[0xED] = def("SBC", tmplAbsRead, coreSBC, DestRegister, 4)
	t[0xF1] = def("SBC", tmplIndYRead, coreSBC, DestRegister, 5)
	t[0xF5] = def("SBC", tmplZPXRead, coreSBC, DestRegister, 4)
	t[0xF9] = def("SBC", tmplAbsYRead, coreSBC, DestRegister, 4)
	t[0xFD] = def("SBC", tmplAbsXRead, coreSBC, DestRegister, 4)

	// STX / LDX
	t[0x86] = def("STX", tmplZPWrite, coreSTX, DestMemory, 3)
	t[0x8E] = def("STX", tmplAbsWrite, coreSTX, DestMemory, 4)
	t[0x96] = def("STX", tmplZPYWrite, coreSTX, DestMemory, 4)
	t[0xA2] = def("LDX", tmplImmediate, coreLDX, DestRegister, 2)
	t[0xA6] = def("LDX", tmplZPRead, coreLDX, DestRegister, 3)
	t[0xAE] = def("LDX", tmplAbsRead, coreLDX, DestRegister, 4)
	t[0xB6] = def("LDX", tmplZPYRead, coreLDX, DestRegister, 4)
	t[0xBE] = def("LDX", tmplAbsYRead, coreLDX, DestRegister, 4)

	// STY / LDY
	t[0x84] = def("STY", tmplZPWrite, coreSTY, DestMemory, 3)
	t[0x8C] = def("STY", tmplAbsWrite, coreSTY, DestMemory, 4)
	t[0x94] = def("STY", tmplZPXWrite, coreSTY, DestMemory, 4)
	t[0xA0] = def("LDY", tmplImmediate, coreLDY, DestRegister, 2)
	t[0xA4] = def("LDY", tmplZPRead, coreLDY, DestRegister, 3)
	t[0xAC] = def("LDY", tmplAbsRead, coreLDY, DestRegister, 4)
	t[0xB4] = def("LDY", tmplZPXRead, coreLDY, DestRegister, 4)
	t[0xBC] = def("LDY", tmplAbsXRead, coreLDY, DestRegister, 4)

	// ASL / ROL / LSR / ROR (memory RMW + accumulator)
	t[0x06] = def("ASL", tmplZPRMW, coreASL, DestMemory, 5)
	t[0x0A] = def("ASL", tmplAccumulator, coreASL, DestRegister, 2)
	t[0x0E] = def("ASL", tmplAbsRMW, coreASL, DestMemory, 6)
	t[0x16] = def("ASL", tmplZPXRMW, coreASL, DestMemory, 6)
	t[0x1E] = def("ASL", tmplAbsXRMW, coreASL, DestMemory, 7)

	t[0x26] = def("ROL", tmplZPRMW, coreROL, DestMemory, 5)
	t[0x2A] = def("ROL", tmplAccumulator, coreROL, DestRegister, 2)
	t[0x2E] = def("ROL", tmplAbsRMW, coreROL, DestMemory, 6)
	t[0x36] = def("ROL", tmplZPXRMW, coreROL, DestMemory, 6)
	t[0x3E] = def("ROL", tmplAbsXRMW, coreROL, DestMemory, 7)

	t[0x46] = def("LSR", tmplZPRMW, coreLSR, DestMemory, 5)
	t[0x4A] = def("LSR", tmplAccumulator, coreLSR, DestRegister, 2)
	t[0x4E] = def("LSR", tmplAbsRMW, coreLSR, DestMemory, 6)
	t[0x56] = def("LSR", tmplZPXRMW, coreLSR, DestMemory, 6)
	t[0x5E] = def("LSR", tmplAbsXRMW, coreLSR, DestMemory, 7)

	t[0x66] = def("ROR", tmplZPRMW, coreROR, DestMemory, 5)
	t[0x6A] = def("ROR", tmplAccumulator, coreROR, DestRegister, 2)
	t[0x6E] = def("ROR", tmplAbsRMW, coreROR, DestMemory, 6)
	t[0x76] = def("ROR", tmplZPXRMW, coreROR, DestMemory, 6)
	t[0x7E] = def("ROR", tmplAbsXRMW, coreROR, DestMemory, 7)

	// DEC / INC
	t[0xC6] = def("DEC", tmplZPRMW, coreDEC, DestMemory, 5)
	t[0xCE] = def("DEC", tmplAbsRMW, coreDEC, DestMemory, 6)
	t[0xD6] = def("DEC", tmplZPXRMW, coreDEC, DestMemory, 6)
	t[0xDE] = def("DEC", tmplAbsXRMW, coreDEC, DestMemory, 7)

	t[0xE6] = def("INC", tmplZPRMW, coreINC, DestMemory, 5)
	t[0xEE] = def("INC", tmplAbsRMW, coreINC, DestMemory, 6)
	t[0xF6] = def("INC", tmplZPXRMW, coreINC, DestMemory, 6)
	t[0xFE] = def("INC", tmplAbsXRMW, coreINC, DestMemory, 7)

	// BIT
	t[0x24] = def("BIT", tmplZPRead, coreBIT, DestRegister, 3)
	t[0x2C] = def("BIT", tmplAbsRead, coreBIT, DestRegister, 4)

	// JMP
	t[0x4C] = def("JMP", tmplAbsoluteJMP, nil, DestRegister, 3)
	t[0x6C] = def("JMP", tmplIndirectJMP, nil, DestRegister, 5)

	// Branches
	t[0x10] = def("BPL", tmplRelative, coreBPL, DestRegister, 2)
	t[0x30] = def("BMI", tmplRelative, coreBMI, DestRegister, 2)
	t[0x50] = def("BVC", tmplRelative, coreBVC, DestRegister, 2)
	t[0x70] = def("BVS", tmplRelative, coreBVS, DestRegister, 2)
	t[0x90] = def("BCC", tmplRelative, coreBCC, DestRegister, 2)
	t[0xB0] = def("BCS", tmplRelative, coreBCS, DestRegister, 2)
	t[0xD0] = def("BNE", tmplRelative, coreBNE, DestRegister, 2)
	t[0xF0] = def("BEQ", tmplRelative, coreBEQ, DestRegister, 2)

	// CPX / CPY
	t[0xE0] = def("CPX", tmplImmediate, coreCPX, DestRegister, 2)
	t[0xE4] = def("CPX", tmplZPRead, coreCPX, DestRegister, 3)
	t[0xEC] = def("CPX", tmplAbsRead, coreCPX, DestRegister, 4)
	t[0xC0] = def("CPY", tmplImmediate, coreCPY, DestRegister, 2)
	t[0xC4] = def("CPY", tmplZPRead, coreCPY, DestRegister, 3)
	t[0xCC] = def("CPY", tmplAbsRead, coreCPY, DestRegister, 4)

	// Subroutine / stack control
	t[0x20] = def("JSR", tmplJSR, nil, DestRegister, 6)
	t[0x40] = def("RTI", tmplRTI, nil, DestRegister, 6)
	t[0x60] = def("RTS", tmplRTS, nil, DestRegister, 6)
	t[0x08] = def("PHP", tmplPush, corePHP, DestMemory, 3)
	t[0x28] = def("PLP", tmplPull, corePLP, DestRegister, 4)
	t[0x48] = def("PHA", tmplPush, corePHA, DestMemory, 3)
	t[0x68] = def("PLA", tmplPull, corePLA, DestRegister, 4)

	// Implied register/flag ops
	t[0x88] = def("DEY", tmplImplied, coreDEY, DestRegister, 2)
	t[0xA8] = def("TAY", tmplImplied, coreTAY, DestRegister, 2)
	t[0xC8] = def("INY", tmplImplied, coreINY, DestRegister, 2)
	t[0xE8] = def("INX", tmplImplied, coreINX, DestRegister, 2)
	t[0x18] = def("CLC", tmplImplied, coreCLC, DestRegister, 2)
	t[0x38] = def("SEC", tmplImplied, coreSEC, DestRegister, 2)
	t[0x58] = def("CLI", tmplImplied, coreCLI, DestRegister, 2)
	t[0x78] = def("SEI", tmplImplied, coreSEI, DestRegister, 2)
	t[0x98] = def("TYA", tmplImplied, coreTYA, DestRegister, 2)
	t[0xB8] = def("CLV", tmplImplied, coreCLV, DestRegister, 2)
	t[0xD8] = def("CLD", tmplImplied, coreCLD, DestRegister, 2)
	t[0xF8] = def("SED", tmplImplied, coreSED, DestRegister, 2)
	t[0x8A] = def("TXA", tmplImplied, coreTXA, DestRegister, 2)
	t[0x9A] = def("TXS", tmplImplied, coreTXS, DestRegister, 2)
	t[0xAA] = def("TAX", tmplImplied, coreTAX, DestRegister, 2)
	t[0xBA] = def("TSX", tmplImplied, coreTSX, DestRegister, 2)
	t[0xCA] = def("DEX", tmplImplied, coreDEX, DestRegister, 2)
	t[0xEA] = def("NOP", tmplImplied, coreNOP, DestRegister, 2)
}
