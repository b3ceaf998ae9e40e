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

// fetchStep runs the single FETCH cycle: consume the opcode byte, consult
// the instruction table, and either drop straight into INTERRUPT (BRK) or
// load the template+core pair and enable interrupt polling for EXEC.
func (cpu *CPU) fetchStep() {
	opcode := cpu.fetch()

	if opcode == opcodeBRK {
		cpu.intKind = IntBrk
		cpu.fn = modeInterrupt
		// BRK's opcode fetch is itself interrupt-sequence cycle 1 (there is
		// no separate cycle 0 preceding it), so pre-set counter to 1 here:
		// the next Step lands on case 2, not a redundant second case 1.
		cpu.tmp = execState{counter: 1}
		return
	}

	instr := opcodeTable[opcode]
	if instr == nil {
		panic(&UndefinedOpcodeError{Opcode: opcode, PC: cpu.PC - 1})
	}

	cpu.tmp = execState{counter: 1, instr: instr}
	cpu.fn = modeExec

	if cpu.pollSuppressed {
		cpu.pollSuppressed = false
		cpu.intPollingEnabled = false
	} else {
		cpu.intPollingEnabled = true
	}
}

// execStep hands the current sub-cycle to the instruction's addressing
// template, which performs the reads/writes and invokes the core at the
// semantically correct cycle.
func (cpu *CPU) execStep() {
	cpu.tmp.instr.Template(cpu)
}

// finishExec is called by every addressing template on its final cycle. It
// performs the penultimate-cycle interrupt poll (per the caller's
// forceDelay, which only the Relative template sets) and returns control to
// FETCH.
func (cpu *CPU) finishExec(forceDelay bool) {
	if cpu.intPollingEnabled && cpu.pend.kind == IntNone {
		if kind, ok := cpu.pollLatches(); ok {
			cpu.pend = pending{kind: kind, forceDelayed: forceDelay}
		}
	}
	cpu.fn = modeFetch
}

// intStep runs the fixed 7-cycle INTERRUPT sequence described in the state
// machine's cycle table, shared by RESET/NMI/IRQ and BRK.
func (cpu *CPU) intStep() {
	switch cpu.tmp.counter {
	case 1:
		cpu.resolveInterruptEntry()
	case 2:
		if cpu.intKind == IntBrk {
			cpu.PC++
		}
	case 3:
		if cpu.intKind != IntReset {
			cpu.pushStack(uint8(cpu.PC >> 8))
		}
	case 4:
		if cpu.intKind != IntReset {
			cpu.pushStack(uint8(cpu.PC))
		}
	case 5:
		if cpu.intKind != IntReset {
			p := cpu.P | FlagReserved
			if cpu.intKind == IntBrk {
				p |= FlagBreak
			} else {
				p &^= FlagBreak
			}
			cpu.pushStack(p)
		}
	case 6:
		cpu.SetFlag(FlagInterrupt, true)
	case 7:
		vec := vectorFor(cpu.intKind)
		lo := cpu.read(vec)
		hi := cpu.read(vec + 1)
		cpu.PC = uint16(hi)<<8 | uint16(lo)
		if cpu.intKind == IntReset {
			cpu.S -= 3
			cpu.SetFlag(FlagInterrupt, true)
		}
		cpu.pollSuppressed = true
		cpu.intKind = IntNone
		cpu.fn = modeFetch
	}
}

// resolveInterruptEntry clears whichever latch caused this sequence, except
// IRQ's level line, which the raising device must lower itself, and BRK,
// which was never latch-driven.
func (cpu *CPU) resolveInterruptEntry() {
	switch cpu.intKind {
	case IntReset:
		cpu.resetOccurred = false
	case IntNMI:
		cpu.nmiOccurred = false
	}
	cpu.intPollingEnabled = false
}
