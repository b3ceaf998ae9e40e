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

// Core is the pure per-mnemonic arithmetic/logic/flag step. For a
// register-destination instruction the template feeds it the already-read
// operand and discards the return; for a memory-destination instruction the
// template writes the return value back to the target address (or A, for
// the accumulator addressing mode).
type Core func(cpu *CPU, v uint8) uint8

func coreLDA(cpu *CPU, v uint8) uint8 { cpu.A = v; cpu.setNZ(v); return v }
func coreLDX(cpu *CPU, v uint8) uint8 { cpu.X = v; cpu.setNZ(v); return v }
func coreLDY(cpu *CPU, v uint8) uint8 { cpu.Y = v; cpu.setNZ(v); return v }

func coreSTA(cpu *CPU, _ uint8) uint8 { return cpu.A }
func coreSTX(cpu *CPU, _ uint8) uint8 { return cpu.X }
func coreSTY(cpu *CPU, _ uint8) uint8 { return cpu.Y }

func coreORA(cpu *CPU, v uint8) uint8 { cpu.A |= v; cpu.setNZ(cpu.A); return cpu.A }
func coreAND(cpu *CPU, v uint8) uint8 { cpu.A &= v; cpu.setNZ(cpu.A); return cpu.A }
func coreEOR(cpu *CPU, v uint8) uint8 { cpu.A ^= v; cpu.setNZ(cpu.A); return cpu.A }

// coreADC extends operands to 16 bits; Overflow is derived from the XOR
// formula; Carry reflects bit-8 carry out. SBC reuses this with the operand
// bit-inverted, which is equivalent to A - v - (1 - Carry).
func coreADC(cpu *CPU, v uint8) uint8 {
	carryIn := uint16(cpu.GetFlag(FlagCarry))
	sum := uint16(cpu.A) + uint16(v) + carryIn
	result := uint8(sum)
	cpu.SetFlag(FlagCarry, sum > 0xFF)
	cpu.SetFlag(FlagOverflow, (cpu.A^result)&(v^result)&0x80 != 0)
	cpu.A = result
	cpu.setNZ(result)
	return result
}

func coreSBC(cpu *CPU, v uint8) uint8 {
	return coreADC(cpu, ^v)
}

func compare(cpu *CPU, reg uint8, v uint8) {
	diff := uint16(reg) + uint16(^v) + 1
	result := uint8(diff)
	cpu.SetFlag(FlagCarry, diff > 0xFF)
	cpu.setNZ(result)
}

func coreCMP(cpu *CPU, v uint8) uint8 { compare(cpu, cpu.A, v); return v }
func coreCPX(cpu *CPU, v uint8) uint8 { compare(cpu, cpu.X, v); return v }
func coreCPY(cpu *CPU, v uint8) uint8 { compare(cpu, cpu.Y, v); return v }

func coreASL(cpu *CPU, v uint8) uint8 {
	carryOut := v&0x80 != 0
	result := v << 1
	cpu.SetFlag(FlagCarry, carryOut)
	cpu.setNZ(result)
	return result
}

func coreLSR(cpu *CPU, v uint8) uint8 {
	carryOut := v&0x01 != 0
	result := v >> 1
	cpu.SetFlag(FlagCarry, carryOut)
	cpu.setNZ(result)
	return result
}

func coreROL(cpu *CPU, v uint8) uint8 {
	carryIn := cpu.GetFlag(FlagCarry)
	carryOut := v&0x80 != 0
	result := (v << 1) | carryIn
	cpu.SetFlag(FlagCarry, carryOut)
	cpu.setNZ(result)
	return result
}

func coreROR(cpu *CPU, v uint8) uint8 {
	carryIn := cpu.GetFlag(FlagCarry)
	carryOut := v&0x01 != 0
	result := (v >> 1) | (carryIn << 7)
	cpu.SetFlag(FlagCarry, carryOut)
	cpu.setNZ(result)
	return result
}

// coreBIT reads N and V from the operand's bits 7/6, Z from A&operand; A is
// unchanged regardless of Destination.
func coreBIT(cpu *CPU, v uint8) uint8 {
	cpu.SetFlag(FlagNegative, v&0x80 != 0)
	cpu.SetFlag(FlagOverflow, v&0x40 != 0)
	cpu.SetFlag(FlagZero, cpu.A&v == 0)
	return v
}

func coreINC(cpu *CPU, v uint8) uint8 { result := v + 1; cpu.setNZ(result); return result }
func coreDEC(cpu *CPU, v uint8) uint8 { result := v - 1; cpu.setNZ(result); return result }

func coreINX(cpu *CPU, _ uint8) uint8 { cpu.X++; cpu.setNZ(cpu.X); return cpu.X }
func coreINY(cpu *CPU, _ uint8) uint8 { cpu.Y++; cpu.setNZ(cpu.Y); return cpu.Y }
func coreDEX(cpu *CPU, _ uint8) uint8 { cpu.X--; cpu.setNZ(cpu.X); return cpu.X }
func coreDEY(cpu *CPU, _ uint8) uint8 { cpu.Y--; cpu.setNZ(cpu.Y); return cpu.Y }

func coreCLC(cpu *CPU, _ uint8) uint8 { cpu.SetFlag(FlagCarry, false); return 0 }
func coreSEC(cpu *CPU, _ uint8) uint8 { cpu.SetFlag(FlagCarry, true); return 0 }
func coreCLI(cpu *CPU, _ uint8) uint8 { cpu.SetFlag(FlagInterrupt, false); return 0 }
func coreSEI(cpu *CPU, _ uint8) uint8 { cpu.SetFlag(FlagInterrupt, true); return 0 }
func coreCLV(cpu *CPU, _ uint8) uint8 { cpu.SetFlag(FlagOverflow, false); return 0 }
func coreCLD(cpu *CPU, _ uint8) uint8 { cpu.SetFlag(FlagDecimal, false); return 0 }
func coreSED(cpu *CPU, _ uint8) uint8 { cpu.SetFlag(FlagDecimal, true); return 0 }

func coreTAX(cpu *CPU, _ uint8) uint8 { cpu.X = cpu.A; cpu.setNZ(cpu.X); return cpu.X }
func coreTAY(cpu *CPU, _ uint8) uint8 { cpu.Y = cpu.A; cpu.setNZ(cpu.Y); return cpu.Y }
func coreTXA(cpu *CPU, _ uint8) uint8 { cpu.A = cpu.X; cpu.setNZ(cpu.A); return cpu.A }
func coreTYA(cpu *CPU, _ uint8) uint8 { cpu.A = cpu.Y; cpu.setNZ(cpu.A); return cpu.A }
func coreTSX(cpu *CPU, _ uint8) uint8 { cpu.X = cpu.S; cpu.setNZ(cpu.X); return cpu.X }

// coreTXS does not affect flags.
func coreTXS(cpu *CPU, _ uint8) uint8 { cpu.S = cpu.X; return cpu.S }

func coreNOP(cpu *CPU, v uint8) uint8 { return v }

// Branch cores report whether the named condition holds; the Relative
// template uses the result to decide whether the branch is taken.
func coreBPL(cpu *CPU, _ uint8) uint8 { return boolToU8(cpu.GetFlag(FlagNegative) == 0) }
func coreBMI(cpu *CPU, _ uint8) uint8 { return boolToU8(cpu.GetFlag(FlagNegative) != 0) }
func coreBVC(cpu *CPU, _ uint8) uint8 { return boolToU8(cpu.GetFlag(FlagOverflow) == 0) }
func coreBVS(cpu *CPU, _ uint8) uint8 { return boolToU8(cpu.GetFlag(FlagOverflow) != 0) }
func coreBCC(cpu *CPU, _ uint8) uint8 { return boolToU8(cpu.GetFlag(FlagCarry) == 0) }
func coreBCS(cpu *CPU, _ uint8) uint8 { return boolToU8(cpu.GetFlag(FlagCarry) != 0) }
func coreBNE(cpu *CPU, _ uint8) uint8 { return boolToU8(cpu.GetFlag(FlagZero) == 0) }
func coreBEQ(cpu *CPU, _ uint8) uint8 { return boolToU8(cpu.GetFlag(FlagZero) != 0) }

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
