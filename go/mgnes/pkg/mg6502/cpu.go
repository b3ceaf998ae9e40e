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

// Package mg6502 implements a cycle-accurate emulation of the MOS-6502-derived
// CPU found in the original 8-bit home console: fetch/execute/interrupt state
// switching, the 256-entry opcode table, the addressing-mode cycle scripts,
// and the per-mnemonic operation cores.
package mg6502

import "github.com/master-g/nescore/go/mgnes/pkg/log"

const (
	// StackBase is the fixed page the stack pointer indexes into.
	StackBase uint16 = 0x0100

	vecNMI   uint16 = 0xFFFA
	vecReset uint16 = 0xFFFC
	vecIRQ   uint16 = 0xFFFE

	opcodeBRK uint8 = 0x00
)

// Bus is the memory interface the CPU reads and writes through. It is
// satisfied by pkg/bus.Bus in the full console, and by a plain flat array
// in isolated CPU tests.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// mode is the CPU's three-state dispatch tag (FETCH / EXEC / INTERRUPT),
// per the Design Notes' recommendation to use a tagged variant over raw
// function pointers.
type mode uint8

const (
	modeFetch mode = iota
	modeExec
	modeInterrupt
)

// IntType identifies which interrupt is in flight, or none.
type IntType uint8

const (
	IntNone IntType = iota
	IntReset
	IntNMI
	IntIRQ
	IntBrk
)

// pending records the interrupt kind chosen during the penultimate-cycle
// poll of the current instruction, plus the one-instruction delay quirk
// for a branch taken without crossing a page.
type pending struct {
	kind         IntType
	forceDelayed bool
}

// execState is the transient state living for exactly one instruction or
// interrupt sequence.
type execState struct {
	counter uint8 // sub-cycle counter, 1..=7
	op1     uint8
	op2     uint8
	addr    uint16
	instr   *Instruction
}

// CPU is the complete architectural plus microarchitectural state of the
// 6502-derived execution core.
type CPU struct {
	A, X, Y uint8
	S       uint8
	P       uint8
	PC      uint16

	bus Bus

	// Debug gates debug-only assertions (WriteToReadOnly, stack wrap
	// warnings) without requiring a separate build tag.
	Debug bool

	resetOccurred bool
	nmiOccurred   bool
	irqOccurred   bool

	fn   mode
	tmp  execState
	pend pending

	intKind           IntType
	intPollingEnabled bool
	pollSuppressed    bool

	totalCycles uint64
}

// New constructs a CPU wired to the given bus. Call Reset (or rely on the
// bootstrap path in Step) to begin the power-on RESET sequence.
func New(bus Bus) *CPU {
	cpu := &CPU{bus: bus}
	cpu.P = FlagReserved | FlagInterrupt
	cpu.S = 0xFD
	cpu.fn = modeFetch
	cpu.resetOccurred = true
	return cpu
}

// SetBus rebinds the CPU to a different bus implementation.
func (cpu *CPU) SetBus(bus Bus) {
	cpu.bus = bus
}

func (cpu *CPU) read(addr uint16) uint8 {
	return cpu.bus.Read(addr)
}

func (cpu *CPU) write(addr uint16, v uint8) {
	if cpu.Debug && addr >= 0x8000 {
		log.L("mg6502: write to read-only address %#04x", addr)
	}
	cpu.bus.Write(addr, v)
}

// fetch reads the byte at PC and advances PC, wrapping modulo 2^16.
func (cpu *CPU) fetch() uint8 {
	v := cpu.read(cpu.PC)
	cpu.PC++
	return v
}

// pushStack writes v at 0x0100+S and decrements S, wrapping.
func (cpu *CPU) pushStack(v uint8) {
	if cpu.Debug && cpu.S == 0x00 {
		log.L("mg6502: stack overflow on push")
	}
	cpu.write(StackBase+uint16(cpu.S), v)
	cpu.S--
}

// incStack increments S in place — the dummy cycle RTS/RTI/PLA/PLP perform
// before reading the stack.
func (cpu *CPU) incStack() {
	if cpu.Debug && cpu.S == 0xFF {
		log.L("mg6502: stack underflow on pull")
	}
	cpu.S++
}

// peekStack reads the byte currently addressed by S without moving it.
func (cpu *CPU) peekStack() uint8 {
	return cpu.read(StackBase + uint16(cpu.S))
}

// pullStack increments S then reads — the common PLA/PLP/RTI/RTS idiom.
func (cpu *CPU) pullStack() uint8 {
	cpu.incStack()
	return cpu.peekStack()
}

// Reset requests a RESET sequence. RESET is line-sensitive; the CPU clears
// the latch itself on entry to the handler.
func (cpu *CPU) Reset() {
	cpu.resetOccurred = true
}

// TriggerNMI raises the edge-sensitive NMI latch. Cleared by the CPU on
// entry to the NMI handler.
func (cpu *CPU) TriggerNMI() {
	cpu.nmiOccurred = true
}

// TriggerIRQ raises the level-sensitive IRQ line. The external device that
// raised it is responsible for calling ClearIRQ once serviced.
func (cpu *CPU) TriggerIRQ() {
	cpu.irqOccurred = true
}

// ClearIRQ lowers the IRQ line.
func (cpu *CPU) ClearIRQ() {
	cpu.irqOccurred = false
}

// Complete reports whether the CPU is between instructions — i.e. the next
// Step call begins a fresh fetch or interrupt sequence.
func (cpu *CPU) Complete() bool {
	return cpu.fn == modeFetch
}

// TotalCycles returns the number of sub-cycles consumed since construction,
// for cycle-count assertions in tests.
func (cpu *CPU) TotalCycles() uint64 {
	return cpu.totalCycles
}

// Step advances the CPU by exactly one sub-cycle, the unit the Clock Driver
// calls once per three PPU dots.
func (cpu *CPU) Step() {
	cpu.totalCycles++

	if cpu.fn == modeFetch {
		if kind, ok := cpu.resolveHardwareInterrupt(); ok {
			cpu.fn = modeInterrupt
			cpu.tmp = execState{}
			cpu.intKind = kind
		} else {
			cpu.fetchStep()
			return
		}
	}

	cpu.tmp.counter++
	switch cpu.fn {
	case modeExec:
		cpu.execStep()
	case modeInterrupt:
		cpu.intStep()
	}
}

// resolveHardwareInterrupt decides, at FETCH entry, whether a pending or
// freshly-bootstrapped hardware interrupt should preempt the next opcode
// fetch. It never looks at the NMI/IRQ latches directly — the pending slot,
// filled by the poll at the end of the previous instruction, drives that
// decision. When the slot is empty it does check the RESET latch, on every
// FETCH entry: this is how both the power-on RESET set by New and a later
// Reset request begin.
func (cpu *CPU) resolveHardwareInterrupt() (IntType, bool) {
	if cpu.pend.kind != IntNone {
		if cpu.pend.forceDelayed {
			cpu.pend.forceDelayed = false
			return IntNone, false
		}
		kind := cpu.pend.kind
		cpu.pend = pending{}
		return kind, true
	}
	if cpu.resetOccurred {
		return IntReset, true
	}
	return IntNone, false
}

// pollLatches resolves the asserted pin of highest priority (Reset > NMI >
// IRQ), IRQ gated by the Interrupt-disable flag.
func (cpu *CPU) pollLatches() (IntType, bool) {
	switch {
	case cpu.resetOccurred:
		return IntReset, true
	case cpu.nmiOccurred:
		return IntNMI, true
	case cpu.irqOccurred && cpu.GetFlag(FlagInterrupt) == 0:
		return IntIRQ, true
	default:
		return IntNone, false
	}
}

// vectorFor returns the low address of the two-byte vector for kind. IRQ
// and BRK share the same vector.
func vectorFor(kind IntType) uint16 {
	switch kind {
	case IntReset:
		return vecReset
	case IntNMI:
		return vecNMI
	default:
		return vecIRQ
	}
}
