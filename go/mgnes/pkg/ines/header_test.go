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

package ines

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// validHeaderBytes builds a well-formed 16-byte iNES header: 2x16KB PRG,
// 1x8KB CHR, vertical mirroring, mapper 1 (low nibble 1, high nibble 0),
// and the trailing bytes zeroed the way header.padding expects.
func validHeaderBytes() []byte {
	return []byte{
		'N', 'E', 'S', 0x1A,
		0x02,       // PRG: 2 x 16KB
		0x01,       // CHR: 1 x 8KB
		0x11,       // Flag6: mapper low nibble 1, mirroring=vertical
		0x00,       // Flag7: mapper high nibble 0
		0x00,       // PRGRAM
		0x00,       // Flag9
		0x00,       // Flag10
		0x00, 0x00, 0x00, 0x00, 0x00, // padding
	}
}

func TestNewHeaderValid(t *testing.T) {
	h, err := NewHeader(bytes.NewReader(validHeaderBytes()))
	require.NoError(t, err)
	require.Equal(t, 2*16*1024, h.PRGROMSize())
	require.Equal(t, 1*8*1024, h.CHRROMSize())
	require.Equal(t, uint8(1), h.Mapper())
	require.Equal(t, MirroringVertical, h.Mirroring())
}

func TestNewHeaderRejectsBadMagic(t *testing.T) {
	raw := validHeaderBytes()
	raw[0] = 'X'
	_, err := NewHeader(bytes.NewReader(raw))
	require.Error(t, err)
}

func TestNewHeaderRejectsShortInput(t *testing.T) {
	_, err := NewHeader(bytes.NewReader(validHeaderBytes()[:10]))
	require.Error(t, err)
}

func TestNewHeaderRejectsNonZeroPadding(t *testing.T) {
	raw := validHeaderBytes()
	raw[11] = 0x01 // first padding byte after Flag10
	_, err := NewHeader(bytes.NewReader(raw))
	require.Error(t, err)
}

func TestHeaderMapperSplitAcrossFlags(t *testing.T) {
	raw := validHeaderBytes()
	raw[6] = 0x40 // Flag6 low nibble of mapper = 4
	raw[7] = 0x10 // Flag7 high nibble of mapper = 1 -> mapper 0x14 = 20
	h, err := NewHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, uint8(20), h.Mapper())
}

func TestHeaderFlag6Bits(t *testing.T) {
	raw := validHeaderBytes()
	raw[6] = 0x0F // mirroring=1(vertical), battery=1, trainer=1, four-screen=1
	h, err := NewHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, MirroringVertical, h.Mirroring())
	require.True(t, h.PersistentSRAM())
	require.True(t, h.Trainer())
	require.True(t, h.FourScreenMode())
}

func TestHeaderPRGRAMSizeDefaultsWhenZero(t *testing.T) {
	raw := validHeaderBytes()
	h, err := NewHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 8, h.PRGRAMSize()) // 0 infers 8KB
}

func TestHeaderNES20Flag(t *testing.T) {
	raw := validHeaderBytes()
	raw[7] = 0x08 // Flag7 bits 2-3 == 0b10 marks NES 2.0 format
	h, err := NewHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	require.True(t, h.NES20())
}

func TestMagic2MapperUnknown(t *testing.T) {
	require.Equal(t, "Unknown", Magic2Mapper(250))
	require.Equal(t, "MMC1", Magic2Mapper(1))
}
