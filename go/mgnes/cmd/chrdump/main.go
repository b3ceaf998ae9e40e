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

// Command chrdump renders a loaded cartridge's CHR pattern tables to a PNG
// tile sheet, one 128x128 sheet per 4KiB pattern table.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/bits"
	"os"
	"sort"

	"github.com/master-g/nescore/go/mgnes/pkg/cartridge"
	cli "gopkg.in/urfave/cli.v2"
)

// grayscale is the 4-level palette every tile is rendered with: plain 2bpp
// tile planes shown as luminance. No NES palette is applied.
var grayscale = [4]color.RGBA{
	{0, 0, 0, 255},
	{96, 96, 96, 255},
	{176, 176, 176, 255},
	{255, 255, 255, 255},
}

const (
	tileBytes         = 16 // 8x8 2bpp tile, 2 bitplanes of 8 bytes each
	tilesPerRow       = 16
	patternTableBytes = 4096
)

func main() {
	app := &cli.App{
		Name:    "chrdump",
		Usage:   "render a cartridge's CHR pattern tables to PNG",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rom",
				Aliases: []string{"r"},
				Usage:   "path to the .nes image",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file prefix",
				Value:   "chr",
			},
		},
		Action: run,
	}
	sort.Sort(cli.FlagsByName(app.Flags))

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" && c.Args().Len() > 0 {
		romPath = c.Args().First()
	}
	if romPath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("a ROM path is required", 1)
	}
	outPrefix := c.String("out")

	f, err := os.Open(romPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()

	cart, err := cartridge.Load(f, romPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	chrSize := int(cart.CHRBanks()) * 8 * 1024
	if chrSize == 0 {
		return cli.Exit("cartridge has no CHR-ROM to dump (CHR-RAM board)", 1)
	}

	tableCount := chrSize / patternTableBytes
	for table := 0; table < tableCount; table++ {
		img := renderPatternTable(cart, uint16(table*patternTableBytes))
		name := fmt.Sprintf("%v_%d.png", outPrefix, table)
		if err := writePNG(name, img); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	return nil
}

// renderPatternTable draws the 256 8x8 tiles starting at base (a pattern
// table is always exactly 4KiB, 256 tiles of 16 bytes each) into a 128x128
// grayscale image.
func renderPatternTable(cart *cartridge.Cartridge, base uint16) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))

	for tile := 0; tile < 256; tile++ {
		tx := (tile % tilesPerRow) * 8
		ty := (tile / tilesPerRow) * 8
		tileAddr := base + uint16(tile*tileBytes)

		for row := 0; row < 8; row++ {
			lo, _ := cart.PpuRead(tileAddr + uint16(row))
			hi, _ := cart.PpuRead(tileAddr + uint16(row) + 8)
			loR := bits.Reverse8(lo)
			hiR := bits.Reverse8(hi)
			for col := 0; col < 8; col++ {
				b0 := (loR >> uint(col)) & 0x01
				b1 := (hiR >> uint(col)) & 0x01
				pixel := b0 | (b1 << 1)
				img.Set(tx+col, ty+row, grayscale[pixel])
			}
		}
	}

	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
