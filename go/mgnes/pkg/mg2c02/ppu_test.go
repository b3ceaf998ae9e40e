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

package mg2c02

import (
	"testing"

	"github.com/master-g/nescore/go/mgnes/pkg/cartridge"
	"github.com/master-g/nescore/go/mgnes/pkg/ines"
	"github.com/stretchr/testify/require"
)

// newTestPPU builds a PPU wired to a cartridge stub carrying only the
// mirroring mode, enough to exercise nametable addressing and the register
// window without a real ROM file.
func newTestPPU(t *testing.T, mirroring ines.MirroringDirection) *PPU {
	t.Helper()
	p := New()
	p.AttachCartridge(&cartridge.Cartridge{Mirroring: mirroring})
	return p
}

func TestAddressLatchTwoWriteThenRead(t *testing.T) {
	p := newTestPPU(t, ines.MirroringHorizontal)
	p.vramWrite(0x2000, 0xAB)

	p.Write(6, 0x20) // high byte
	p.Write(6, 0x00) // low byte -> vramAddr = 0x2000
	require.Equal(t, uint16(0x2000), p.vramAddr)

	// First read is buffered: returns the stale buffer, refills from 0x2000.
	_ = p.Read(7)
	got := p.Read(7)
	require.Equal(t, uint8(0xAB), got)
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p := newTestPPU(t, ines.MirroringHorizontal)
	p.status |= statusVBlank
	p.Write(6, 0x3F) // first of the two-write sequence; latch now true
	require.True(t, p.addrLatch)

	result := p.Read(2)
	require.NotZero(t, result&statusVBlank)
	require.Zero(t, p.status&statusVBlank)
	require.False(t, p.addrLatch)
}

func TestPaletteMirrorAlias(t *testing.T) {
	p := newTestPPU(t, ines.MirroringHorizontal)
	p.Write(6, 0x3F)
	p.Write(6, 0x00)
	p.Write(7, 0x11) // palette[0x00] = 0x11

	p.Write(6, 0x3F)
	p.Write(6, 0x10)
	p.Write(7, 0x22) // 0x3F10 aliases 0x3F00

	require.Equal(t, uint8(0x22), p.palette[0x00])
}

func TestNametableMirroringHorizontal(t *testing.T) {
	p := newTestPPU(t, ines.MirroringHorizontal)
	// Horizontal: NT0/NT1 share physical table 0, NT2/NT3 share table 1.
	require.Equal(t, 0, p.nametableMirror(0x2000))
	require.Equal(t, 0, p.nametableMirror(0x2400))
	require.Equal(t, 1, p.nametableMirror(0x2800))
	require.Equal(t, 1, p.nametableMirror(0x2C00))
}

func TestNametableMirroringVertical(t *testing.T) {
	p := newTestPPU(t, ines.MirroringVertical)
	// Vertical: NT0/NT2 share physical table 0, NT1/NT3 share table 1.
	require.Equal(t, 0, p.nametableMirror(0x2000))
	require.Equal(t, 1, p.nametableMirror(0x2400))
	require.Equal(t, 0, p.nametableMirror(0x2800))
	require.Equal(t, 1, p.nametableMirror(0x2C00))
}

func TestVBlankSetAndNMIEdgeAtScanline241(t *testing.T) {
	p := newTestPPU(t, ines.MirroringHorizontal)
	p.ctrl = 0x80 // NMI-on-vblank enabled
	p.scanline = vblankScanline
	p.dot = 0

	p.Step() // advances dot to 1, the edge dot
	require.NotZero(t, p.status&statusVBlank)
	require.True(t, p.PollVBlankEdge())
	require.False(t, p.PollVBlankEdge()) // edge is consumed, not re-raised
}

func TestVBlankClearedAtPreRenderLine(t *testing.T) {
	p := newTestPPU(t, ines.MirroringHorizontal)
	p.status = statusVBlank | statusSprite0 | statusOverflow
	p.scanline = preRenderScanline
	p.dot = 0

	p.Step()
	require.Zero(t, p.status)
}

func TestOAMWriteAndAddrIncrement(t *testing.T) {
	p := newTestPPU(t, ines.MirroringHorizontal)
	p.Write(3, 0x10) // OAMADDR
	p.Write(4, 0x55) // OAMDATA
	require.Equal(t, uint8(0x55), p.oam[0x10])
	require.Equal(t, uint8(0x11), p.oamAddr)
}

func TestAddrIncrementModeFromCtrl(t *testing.T) {
	p := newTestPPU(t, ines.MirroringHorizontal)
	require.Equal(t, uint16(1), p.addrIncrement())
	p.ctrl |= 0x04
	require.Equal(t, uint16(32), p.addrIncrement())
}
