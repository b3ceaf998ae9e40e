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

// Template is a per-cycle-indexed addressing script. It inspects
// cpu.tmp.counter to know which sub-cycle it is on, and calls
// cpu.finishExec on its final cycle.
type Template func(cpu *CPU)

func pageCross(base, final uint16) bool {
	return base&0xFF00 != final&0xFF00
}

// ---- Immediate ----

func tmplImmediate(cpu *CPU) {
	v := cpu.fetch()
	cpu.tmp.instr.Core(cpu, v)
	cpu.finishExec(false)
}

// ---- Zero Page ----

func tmplZPRead(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.addr = uint16(cpu.fetch())
	case 3:
		v := cpu.read(cpu.tmp.addr)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	}
}

func tmplZPWrite(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.addr = uint16(cpu.fetch())
	case 3:
		v := cpu.tmp.instr.Core(cpu, 0)
		cpu.write(cpu.tmp.addr, v)
		cpu.finishExec(false)
	}
}

func tmplZPRMW(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.addr = uint16(cpu.fetch())
	case 3:
		cpu.tmp.op1 = cpu.read(cpu.tmp.addr)
	case 4:
		cpu.write(cpu.tmp.addr, cpu.tmp.op1)
	case 5:
		result := cpu.tmp.instr.Core(cpu, cpu.tmp.op1)
		cpu.write(cpu.tmp.addr, result)
		cpu.finishExec(false)
	}
}

// ---- Zero Page,X / Zero Page,Y ----

func zpIndexedAddr(cpu *CPU, index uint8) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.read(uint16(cpu.tmp.op1))
		cpu.tmp.addr = uint16(cpu.tmp.op1 + index)
	}
}

func tmplZPXRead(cpu *CPU) {
	zpIndexedAddr(cpu, cpu.X)
	if cpu.tmp.counter == 4 {
		v := cpu.read(cpu.tmp.addr)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	}
}

func tmplZPXWrite(cpu *CPU) {
	zpIndexedAddr(cpu, cpu.X)
	if cpu.tmp.counter == 4 {
		v := cpu.tmp.instr.Core(cpu, 0)
		cpu.write(cpu.tmp.addr, v)
		cpu.finishExec(false)
	}
}

func tmplZPYRead(cpu *CPU) {
	zpIndexedAddr(cpu, cpu.Y)
	if cpu.tmp.counter == 4 {
		v := cpu.read(cpu.tmp.addr)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	}
}

func tmplZPYWrite(cpu *CPU) {
	zpIndexedAddr(cpu, cpu.Y)
	if cpu.tmp.counter == 4 {
		v := cpu.tmp.instr.Core(cpu, 0)
		cpu.write(cpu.tmp.addr, v)
		cpu.finishExec(false)
	}
}

func tmplZPXRMW(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2, 3:
		zpIndexedAddr(cpu, cpu.X)
	case 4:
		cpu.tmp.op1 = cpu.read(cpu.tmp.addr)
	case 5:
		cpu.write(cpu.tmp.addr, cpu.tmp.op1)
	case 6:
		result := cpu.tmp.instr.Core(cpu, cpu.tmp.op1)
		cpu.write(cpu.tmp.addr, result)
		cpu.finishExec(false)
	}
}

// ---- Absolute ----

func absFetch(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.tmp.op2 = cpu.fetch()
		cpu.tmp.addr = uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
	}
}

func tmplAbsRead(cpu *CPU) {
	absFetch(cpu)
	if cpu.tmp.counter == 4 {
		v := cpu.read(cpu.tmp.addr)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	}
}

func tmplAbsWrite(cpu *CPU) {
	absFetch(cpu)
	if cpu.tmp.counter == 4 {
		v := cpu.tmp.instr.Core(cpu, 0)
		cpu.write(cpu.tmp.addr, v)
		cpu.finishExec(false)
	}
}

func tmplAbsRMW(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2, 3:
		absFetch(cpu)
	case 4:
		cpu.tmp.op1 = cpu.read(cpu.tmp.addr)
	case 5:
		cpu.write(cpu.tmp.addr, cpu.tmp.op1)
	case 6:
		result := cpu.tmp.instr.Core(cpu, cpu.tmp.op1)
		cpu.write(cpu.tmp.addr, result)
		cpu.finishExec(false)
	}
}

// ---- Absolute,X / Absolute,Y ----

func absIndexed(cpu *CPU, index uint8) (done bool) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.tmp.op2 = cpu.fetch()
		base := uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
		cpu.tmp.addr = base + uint16(index)
	}
	return false
}

func tmplAbsXRead(cpu *CPU) { absIndexedReadGeneric(cpu, cpu.X) }
func tmplAbsYRead(cpu *CPU) { absIndexedReadGeneric(cpu, cpu.Y) }

func absIndexedReadGeneric(cpu *CPU, index uint8) {
	switch cpu.tmp.counter {
	case 2, 3:
		absIndexed(cpu, index)
	case 4:
		base := uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
		if pageCross(base, cpu.tmp.addr) {
			cpu.read((base & 0xFF00) | (cpu.tmp.addr & 0x00FF))
			return
		}
		v := cpu.read(cpu.tmp.addr)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	case 5:
		v := cpu.read(cpu.tmp.addr)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	}
}

func tmplAbsXWrite(cpu *CPU) { absIndexedWriteGeneric(cpu, cpu.X) }
func tmplAbsYWrite(cpu *CPU) { absIndexedWriteGeneric(cpu, cpu.Y) }

func absIndexedWriteGeneric(cpu *CPU, index uint8) {
	switch cpu.tmp.counter {
	case 2, 3:
		absIndexed(cpu, index)
	case 4:
		base := uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
		cpu.read((base & 0xFF00) | (cpu.tmp.addr & 0x00FF))
	case 5:
		v := cpu.tmp.instr.Core(cpu, 0)
		cpu.write(cpu.tmp.addr, v)
		cpu.finishExec(false)
	}
}

// Absolute,X/Y read-modify-write is always 7 cycles: the extra re-addressing
// cycle is taken unconditionally (unlike the read/write variants).
func tmplAbsXRMW(cpu *CPU) { absIndexedRMWGeneric(cpu, cpu.X) }
func tmplAbsYRMW(cpu *CPU) { absIndexedRMWGeneric(cpu, cpu.Y) }

func absIndexedRMWGeneric(cpu *CPU, index uint8) {
	switch cpu.tmp.counter {
	case 2, 3:
		absIndexed(cpu, index)
	case 4:
		base := uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
		cpu.read((base & 0xFF00) | (cpu.tmp.addr & 0x00FF))
	case 5:
		cpu.tmp.op1 = cpu.read(cpu.tmp.addr)
	case 6:
		cpu.write(cpu.tmp.addr, cpu.tmp.op1)
	case 7:
		result := cpu.tmp.instr.Core(cpu, cpu.tmp.op1)
		cpu.write(cpu.tmp.addr, result)
		cpu.finishExec(false)
	}
}

// ---- (Indirect,X) ----

func tmplIndXRead(cpu *CPU) {
	indXAddr(cpu)
	if cpu.tmp.counter == 6 {
		v := cpu.read(cpu.tmp.addr)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	}
}

func tmplIndXWrite(cpu *CPU) {
	indXAddr(cpu)
	if cpu.tmp.counter == 6 {
		v := cpu.tmp.instr.Core(cpu, 0)
		cpu.write(cpu.tmp.addr, v)
		cpu.finishExec(false)
	}
}

func indXAddr(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.read(uint16(cpu.tmp.op1))
		cpu.tmp.op1 += cpu.X
	case 4:
		cpu.tmp.op2 = cpu.read(uint16(cpu.tmp.op1))
	case 5:
		hi := cpu.read(uint16(cpu.tmp.op1 + 1))
		cpu.tmp.addr = uint16(hi)<<8 | uint16(cpu.tmp.op2)
	}
}

// ---- (Indirect),Y ----

func tmplIndYRead(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.tmp.op2 = cpu.read(uint16(cpu.tmp.op1))
	case 4:
		hi := cpu.read(uint16(cpu.tmp.op1 + 1))
		cpu.tmp.addr = uint16(hi)<<8 | uint16(cpu.tmp.op2)
	case 5:
		base := cpu.tmp.addr
		final := base + uint16(cpu.Y)
		if pageCross(base, final) {
			cpu.read((base & 0xFF00) | (final & 0x00FF))
			cpu.tmp.addr = final
			return
		}
		cpu.tmp.addr = final
		v := cpu.read(final)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	case 6:
		v := cpu.read(cpu.tmp.addr)
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	}
}

func tmplIndYWrite(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.tmp.op2 = cpu.read(uint16(cpu.tmp.op1))
	case 4:
		hi := cpu.read(uint16(cpu.tmp.op1 + 1))
		cpu.tmp.addr = uint16(hi)<<8 | uint16(cpu.tmp.op2)
	case 5:
		base := cpu.tmp.addr
		final := base + uint16(cpu.Y)
		cpu.read((base & 0xFF00) | (final & 0x00FF))
		cpu.tmp.addr = final
	case 6:
		v := cpu.tmp.instr.Core(cpu, 0)
		cpu.write(cpu.tmp.addr, v)
		cpu.finishExec(false)
	}
}

// ---- Accumulator / Implied ----

func tmplAccumulator(cpu *CPU) {
	result := cpu.tmp.instr.Core(cpu, cpu.A)
	cpu.A = result
	cpu.finishExec(false)
}

func tmplImplied(cpu *CPU) {
	cpu.tmp.instr.Core(cpu, 0)
	cpu.finishExec(false)
}

// ---- JMP ----

func tmplAbsoluteJMP(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.tmp.op2 = cpu.fetch()
		cpu.PC = uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
		cpu.finishExec(false)
	}
}

// tmplIndirectJMP honours the documented 6502 page-wrap bug: the high byte
// of the target is read from (ptr & 0xFF00) | ((ptr+1) & 0x00FF), never
// crossing into the next page.
func tmplIndirectJMP(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.tmp.op2 = cpu.fetch()
	case 4:
		ptr := uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
		lo := cpu.read(ptr)
		cpu.tmp.addr = uint16(lo)
		cpu.tmp.op1 = uint8(ptr)
		cpu.tmp.op2 = uint8(ptr >> 8)
	case 5:
		ptr := uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
		hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
		hi := cpu.read(hiAddr)
		cpu.PC = uint16(hi)<<8 | cpu.tmp.addr
		cpu.finishExec(false)
	}
}

// ---- Relative (branch) ----

// tmplRelative reproduces the branch-delay interrupt-polling quirk: when
// the branch is taken and stays within the same page, finishExec is called
// with forceDelay=true, postponing a pending interrupt by one instruction.
func tmplRelative(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		offset := cpu.fetch()
		cpu.tmp.op1 = offset
		taken := cpu.tmp.instr.Core(cpu, 0) != 0
		if !taken {
			cpu.finishExec(false)
		}
	case 3:
		oldPC := cpu.PC
		newPC := oldPC + uint16(int8(cpu.tmp.op1))
		cpu.tmp.addr = newPC
		if !pageCross(oldPC, newPC) {
			cpu.PC = newPC
			cpu.finishExec(true)
		}
	case 4:
		cpu.PC = cpu.tmp.addr
		cpu.finishExec(false)
	}
}

// ---- JSR / RTS / RTI ----

func tmplJSR(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.tmp.op1 = cpu.fetch()
	case 3:
		cpu.read(StackBase + uint16(cpu.S))
	case 4:
		cpu.pushStack(uint8(cpu.PC >> 8))
	case 5:
		cpu.pushStack(uint8(cpu.PC))
	case 6:
		hi := cpu.fetch()
		cpu.PC = uint16(hi)<<8 | uint16(cpu.tmp.op1)
		cpu.finishExec(false)
	}
}

func tmplRTS(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.read(cpu.PC)
	case 3:
		cpu.read(StackBase + uint16(cpu.S))
	case 4:
		cpu.tmp.op1 = cpu.pullStack()
	case 5:
		cpu.tmp.op2 = cpu.pullStack()
	case 6:
		cpu.PC = (uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)) + 1
		cpu.finishExec(false)
	}
}

func tmplRTI(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.read(cpu.PC)
	case 3:
		cpu.read(StackBase + uint16(cpu.S))
	case 4:
		p := cpu.pullStack()
		p &^= FlagBreak
		p |= FlagReserved
		cpu.P = p
	case 5:
		cpu.tmp.op1 = cpu.pullStack()
	case 6:
		cpu.tmp.op2 = cpu.pullStack()
		cpu.PC = uint16(cpu.tmp.op2)<<8 | uint16(cpu.tmp.op1)
		cpu.finishExec(false)
	}
}

// ---- PHA / PHP / PLA / PLP ----

func tmplPush(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.read(cpu.PC)
	case 3:
		v := cpu.tmp.instr.Core(cpu, 0)
		cpu.pushStack(v)
		cpu.finishExec(false)
	}
}

func corePHA(cpu *CPU, _ uint8) uint8 { return cpu.A }
func corePHP(cpu *CPU, _ uint8) uint8 { return cpu.P | FlagBreak | FlagReserved }

func tmplPull(cpu *CPU) {
	switch cpu.tmp.counter {
	case 2:
		cpu.read(cpu.PC)
	case 3:
		cpu.read(StackBase + uint16(cpu.S))
	case 4:
		v := cpu.pullStack()
		cpu.tmp.instr.Core(cpu, v)
		cpu.finishExec(false)
	}
}

func corePLA(cpu *CPU, v uint8) uint8 { cpu.A = v; cpu.setNZ(v); return v }
func corePLP(cpu *CPU, v uint8) uint8 {
	v &^= FlagBreak
	v |= FlagReserved
	cpu.P = v
	return v
}
