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

package memory

// CpuMemoryCapacity is the size of the console's internal work RAM: 2 KiB,
// mirrored across the CPU's full 0x0000-0x1FFF window.
const CpuMemoryCapacity = 2048

// Memory is the interface pkg/bus holds its RAM through. Read/Write take
// the full CPU-side address; implementations own their own mirroring.
type Memory interface {
	Reset()
	Read(addr uint16) (value uint8)
	Write(addr uint16, value uint8) (oldValue uint8)
}

// CpuMemory is the console's 2 KiB internal work RAM. addr is masked to
// 0x07FF internally, which is what makes the 0x0000-0x1FFF CPU window
// mirror the same 2 KiB four times over — callers pass the raw CPU
// address and never mask it themselves.
type CpuMemory [CpuMemoryCapacity]byte

// NewCpuMemory builds a zeroed work-RAM bank.
func NewCpuMemory() *CpuMemory {
	mem := &CpuMemory{}
	mem.Reset()
	return mem
}

func (m *CpuMemory) Reset() {
	for i := 0; i < len(m); i++ {
		m[i] = 0
	}
}

func (m *CpuMemory) Read(addr uint16) (value uint8) {
	return m[addr&0x07FF]
}

func (m *CpuMemory) Write(addr uint16, value uint8) (oldValue uint8) {
	oldValue = m[addr&0x07FF]
	m[addr&0x07FF] = value
	return oldValue
}
