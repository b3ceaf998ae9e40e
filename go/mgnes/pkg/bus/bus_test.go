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

package bus

import (
	"testing"

	"github.com/master-g/nescore/go/mgnes/pkg/mg2c02"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	b := New()
	b.AttachPPU(mg2c02.New())
	return b
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x0000, 0x42)
	require.Equal(t, uint8(0x42), b.Read(0x0800)) // mirrors every 0x0800
	require.Equal(t, uint8(0x42), b.Read(0x1000))
	require.Equal(t, uint8(0x42), b.Read(0x1800))
}

func TestPPURegisterWindowMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x2003, 0x10) // OAMADDR via the base register
	b.Write(0x2004, 0x55) // OAMDATA
	b.Write(0x200B, 0x20) // 0x200B mirrors 0x2003 (0x200B & 0x0007 == 3)
	b.Write(0x200C, 0x66) // mirrors OAMDATA

	b.Write(0x2003, 0x20)
	require.Equal(t, uint8(0x66), b.Read(0x2004))
}

func TestControllerShiftRegister(t *testing.T) {
	b := newTestBus(t)
	b.SetController(0, 0b1010_0001)
	b.Write(0x4016, 0x01) // strobe: latch the snapshot

	var bits []uint8
	for i := 0; i < 8; i++ {
		bits = append(bits, b.Read(0x4016)&0x01)
	}
	require.Equal(t, []uint8{1, 0, 1, 0, 0, 0, 0, 1}, bits)
}

func TestOAMDMAEvenAlignment(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 256; i++ {
		b.ram.Write(uint16(i), uint8(i^0xFF))
	}
	b.cpuCycle = 0 // even
	b.Write(0x4014, 0x00)
	require.True(t, b.DMAInProgress())

	cycles := 0
	for b.DMAInProgress() {
		b.StepDMA()
		cycles++
	}
	require.Equal(t, 513, cycles)

	b.Write(0x2003, 0x00)
	require.Equal(t, uint8(0x00^0xFF), b.Read(0x2004))
	b.Write(0x2003, 0xFF)
	require.Equal(t, uint8(0xFF^0xFF), b.Read(0x2004))
}

func TestOAMDMAOddAlignment(t *testing.T) {
	b := newTestBus(t)
	b.cpuCycle = 1 // odd
	b.Write(0x4014, 0x00)

	cycles := 0
	for b.DMAInProgress() {
		b.StepDMA()
		cycles++
	}
	require.Equal(t, 514, cycles)
}
