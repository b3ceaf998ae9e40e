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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// flatBus is a plain 64KiB array satisfying Bus, used to isolate the CPU
// state machine from the rest of the console in these tests.
type flatBus struct {
	mem [65536]uint8
}

func (b *flatBus) Read(addr uint16) uint8       { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, v uint8)   { b.mem[addr] = v }
func (b *flatBus) load(addr uint16, prog ...uint8) {
	copy(b.mem[addr:], prog)
}
func (b *flatBus) setResetVector(addr uint16) {
	b.mem[0xFFFC] = uint8(addr)
	b.mem[0xFFFD] = uint8(addr >> 8)
}

// newTestCPU builds a CPU whose PC starts at org after running the power-on
// RESET sequence to completion.
func newTestCPU(t *testing.T, org uint16) (*CPU, *flatBus) {
	t.Helper()
	bus := &flatBus{}
	bus.setResetVector(org)
	cpu := New(bus)
	runToComplete(cpu)
	require.Equal(t, org, cpu.PC)
	return cpu, bus
}

// runToComplete steps the CPU until it returns to FETCH, i.e. one
// instruction or interrupt sequence has fully run.
func runToComplete(cpu *CPU) {
	cpu.Step()
	for !cpu.Complete() {
		cpu.Step()
	}
}

func runN(cpu *CPU, instructions int) {
	for i := 0; i < instructions; i++ {
		runToComplete(cpu)
	}
}

// --- Invariants (spec.md §8) ---

func TestReservedFlagAlwaysSet(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	bus.load(0x8000, 0xA9, 0x00) // LDA #$00
	runN(cpu, 1)
	require.NotZero(t, cpu.P&FlagReserved)
}

func TestStackPointerWrapsWithinStackPage(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	cpu.S = 0x01
	cpu.A = 0x42
	bus.load(0x8000, 0x48, 0x48, 0x48) // PHA x3: pushes at S=1, S=0, then S wraps to 0xFF
	runN(cpu, 3)
	require.Equal(t, uint8(0xFE), cpu.S)
	require.Equal(t, uint8(0x42), bus.mem[StackBase+0xFF])
}

// --- End-to-end scenario 1: immediate load and store ---

func TestScenarioImmediateLoadAndStore(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	bus.load(0x8000, 0xA9, 0x42, 0x8D, 0x00, 0x02) // LDA #$42 ; STA $0200
	before := cpu.TotalCycles()
	runN(cpu, 2)
	require.Equal(t, uint8(0x42), cpu.A)
	require.Equal(t, uint8(0x42), bus.Read(0x0200))
	require.Zero(t, cpu.GetFlag(FlagNegative))
	require.Zero(t, cpu.GetFlag(FlagZero))
	require.Equal(t, uint64(6), cpu.TotalCycles()-before)
}

// --- End-to-end scenario 2: add with overflow ---

func TestScenarioADCOverflow(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	bus.load(0x8000, 0x69, 0x50) // ADC #$50
	cpu.A = 0x50
	cpu.SetFlag(FlagCarry, false)
	runN(cpu, 1)
	require.Equal(t, uint8(0xA0), cpu.A)
	require.NotZero(t, cpu.GetFlag(FlagNegative))
	require.NotZero(t, cpu.GetFlag(FlagOverflow))
	require.Zero(t, cpu.GetFlag(FlagCarry))
	require.Zero(t, cpu.GetFlag(FlagZero))
}

// --- End-to-end scenario 3: subtract with borrow ---

func TestScenarioSBCBorrow(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	bus.load(0x8000, 0xE9, 0xF0) // SBC #$F0
	cpu.A = 0x50
	cpu.SetFlag(FlagCarry, true)
	runN(cpu, 1)
	require.Equal(t, uint8(0x60), cpu.A)
	require.Zero(t, cpu.GetFlag(FlagCarry))
	require.Zero(t, cpu.GetFlag(FlagOverflow))
	require.Zero(t, cpu.GetFlag(FlagNegative))
	require.Zero(t, cpu.GetFlag(FlagZero))
}

// --- End-to-end scenario 4: branch across a page boundary, and the
// same-page branch-delay interrupt quirk ---

func TestScenarioBranchAcrossPage(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x80F0)
	bus.load(0x80F0, 0xB0, 0x20) // BCS +0x20
	cpu.SetFlag(FlagCarry, true)
	before := cpu.TotalCycles()
	runN(cpu, 1)
	require.Equal(t, uint16(0x8112), cpu.PC)
	require.Equal(t, uint64(4), cpu.TotalCycles()-before)
}

func TestScenarioBranchSamePageDelaysInterrupt(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x80EF)
	bus.load(0x80EF, 0xEA, 0xB0, 0x05) // NOP ; BCS +0x05 (branch at 0x80F0)
	bus.load(0x80F7, 0xEA, 0xEA)       // NOP ; NOP at the branch target
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x91 // IRQ vector -> 0x9100
	cpu.SetFlag(FlagCarry, true)
	cpu.SetFlag(FlagInterrupt, false)
	cpu.TriggerIRQ() // IRQ already pending before the branch executes

	// The leading NOP is the first instruction after RESET and so never
	// polls; the branch is the first instruction that does.
	runToComplete(cpu)

	before := cpu.TotalCycles()
	runToComplete(cpu) // the branch itself
	require.Equal(t, uint16(0x80F7), cpu.PC)
	require.Equal(t, uint64(3), cpu.TotalCycles()-before)

	// The branch's own poll captured the pending IRQ with forceDelayed set,
	// so the very next instruction (the NOP at the branch target) must run
	// to completion untouched before the interrupt is serviced.
	runToComplete(cpu)
	require.Equal(t, uint16(0x80F8), cpu.PC)
	require.Equal(t, IntIRQ, cpu.pend.kind)

	// Only now does the deferred IRQ actually preempt FETCH.
	startS := cpu.S
	runToComplete(cpu)
	require.Equal(t, uint16(0x9100), cpu.PC)
	require.Equal(t, startS-3, cpu.S)
	require.NotZero(t, cpu.GetFlag(FlagInterrupt))
}

// --- End-to-end scenario 5: indirect JMP page-wrap bug ---

func TestScenarioIndirectJMPPageBug(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	bus.load(0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	bus.mem[0x02FF] = 0x34
	bus.mem[0x0200] = 0x12
	bus.mem[0x0300] = 0x56
	runN(cpu, 1)
	require.Equal(t, uint16(0x1234), cpu.PC)
}

// --- End-to-end scenario 6: NMI during instruction execution ---

func TestScenarioNMIDuringInstruction(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x7FFF)
	bus.load(0x7FFF, 0xEA, 0xAD, 0x00, 0x02) // NOP ; LDA $0200 (4 cycles, at 0x8000)
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x90 // NMI vector -> 0x9000

	runToComplete(cpu) // the NOP: first instruction after RESET, never polls

	cpu.Step() // cycle 1: FETCH
	cpu.Step() // cycle 2: first EXEC cycle
	cpu.TriggerNMI()
	for !cpu.Complete() {
		cpu.Step() // finish the LDA
	}

	startS := cpu.S
	runToComplete(cpu) // the 7-cycle INTERRUPT sequence
	require.Equal(t, uint16(0x9000), cpu.PC)
	require.Equal(t, startS-3, cpu.S)
	require.NotZero(t, cpu.GetFlag(FlagInterrupt))

	pushedP := bus.mem[StackBase+uint16(cpu.S)+1]
	require.Zero(t, pushedP&FlagBreak)
	pushedPCLo := bus.mem[StackBase+uint16(cpu.S)+2]
	pushedPCHi := bus.mem[StackBase+uint16(cpu.S)+3]
	require.Equal(t, uint16(0x8003), uint16(pushedPCHi)<<8|uint16(pushedPCLo))
}

// --- BRK cycle count ---

func TestBRKTakesSevenCycles(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	bus.load(0x8000, 0x00) // BRK
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x90 // IRQ/BRK vector -> 0x9000

	before := cpu.TotalCycles()
	runN(cpu, 1)
	require.Equal(t, uint16(0x9000), cpu.PC)
	require.Equal(t, uint64(7), cpu.TotalCycles()-before)
}

// --- Round-trip laws ---

func TestRoundTripPHAPLA(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	bus.load(0x8000, 0xA9, 0x80, 0x48, 0xA9, 0x00, 0x68) // LDA #$80;PHA;LDA #$00;PLA
	runN(cpu, 4)
	require.Equal(t, uint8(0x80), cpu.A)
	require.NotZero(t, cpu.GetFlag(FlagNegative))
	require.Zero(t, cpu.GetFlag(FlagZero))
}

func TestRoundTripPHPPLP(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	cpu.SetFlag(FlagCarry, true)
	bus.load(0x8000, 0x08, 0x18, 0x28) // PHP ; CLC ; PLP
	runN(cpu, 3)
	require.NotZero(t, cpu.GetFlag(FlagCarry))
	require.Zero(t, cpu.GetFlag(FlagBreak))
}

func TestRoundTripJSRRTS(t *testing.T) {
	cpu, bus := newTestCPU(t, 0x8000)
	bus.load(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	bus.load(0x9000, 0x60)             // RTS
	runN(cpu, 2)
	require.Equal(t, uint16(0x8003), cpu.PC)
}

