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

package cartridge

import (
	"errors"
	"io"
	"io/ioutil"

	"github.com/master-g/nescore/go/mgnes/pkg/ines"
	"github.com/master-g/nescore/go/mgnes/pkg/log"
	"github.com/master-g/nescore/go/mgnes/pkg/mappers"
)

// CartridgeLoadError wraps a failure reading or parsing a ROM image, with
// the path that was requested so the caller can surface a single
// user-visible line and exit.
type CartridgeLoadError struct {
	Path string
	Err  error
}

func (e *CartridgeLoadError) Error() string {
	return "cartridge: failed to load " + e.Path + ": " + e.Err.Error()
}

func (e *CartridgeLoadError) Unwrap() error { return e.Err }

// Load parses an iNES (or NES 2.0) image from reader and builds a
// Cartridge around it. path is used only for error messages.
func Load(reader io.Reader, path string) (cart *Cartridge, err error) {
	if reader == nil {
		return nil, &CartridgeLoadError{Path: path, Err: errors.New("nil reader")}
	}

	header, headerErr := ines.NewHeader(reader)
	if headerErr != nil || header == nil {
		if headerErr == nil {
			headerErr = errors.New("invalid iNES header")
		}
		return nil, &CartridgeLoadError{Path: path, Err: headerErr}
	}

	if header.Trainer() {
		discarded, dErr := io.CopyN(ioutil.Discard, reader, 512)
		if dErr != nil || discarded != 512 {
			return nil, &CartridgeLoadError{Path: path, Err: errors.New("truncated trainer")}
		}
	}

	memPRG := make([]uint8, header.PRGROMSize())
	memCHR := make([]uint8, header.CHRROMSize())

	n, rErr := io.ReadFull(reader, memPRG)
	if rErr != nil || n != header.PRGROMSize() {
		return nil, &CartridgeLoadError{Path: path, Err: errors.New("truncated PRG-ROM")}
	}

	n, rErr = io.ReadFull(reader, memCHR)
	if rErr != nil && rErr != io.EOF && rErr != io.ErrUnexpectedEOF {
		return nil, &CartridgeLoadError{Path: path, Err: rErr}
	}
	if n != header.CHRROMSize() {
		return nil, &CartridgeLoadError{Path: path, Err: errors.New("truncated CHR-ROM")}
	}
	if header.CHR == 0 {
		// CHR-RAM board: back the 8 KiB pattern-table window with RAM.
		memCHR = make([]uint8, 8*1024)
	}

	mapper, mErr := mappers.Create(mappers.HeaderInfo{
		MapperID:    header.Mapper(),
		NumPRGBanks: header.PRG,
		NumCHRBanks: header.CHR,
	})
	if mErr != nil {
		return nil, &CartridgeLoadError{Path: path, Err: mErr}
	}

	log.L("cartridge: loaded %s mapper=%d prg=%dx16KiB chr=%dx8KiB mirroring=%v",
		path, header.Mapper(), header.PRG, header.CHR, header.Mirroring())

	cart = &Cartridge{
		Mirroring:   header.Mirroring(),
		FourScreen:  header.FourScreenMode(),
		Battery:     header.PersistentSRAM(),
		NES20:       header.NES20(),
		mapperID:    header.Mapper(),
		numPRGBanks: header.PRG,
		numCHRBanks: header.CHR,
		memPRG:      memPRG,
		memCHR:      memCHR,
		mapper:      mapper,
	}

	return cart, nil
}
