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

// Command romdump prints an iNES header and optionally extracts its
// trainer/PRG/CHR sections to disk.
package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/master-g/nescore/go/mgnes/pkg/ines"
	cli "gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:    "romdump",
		Usage:   "inspect and extract an iNES ROM image",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rom",
				Aliases: []string{"r"},
				Usage:   "path to the .nes image",
			},
			&cli.BoolFlag{
				Name:    "extract",
				Aliases: []string{"x"},
				Usage:   "extract trainer/PRG/CHR sections into a directory named after the ROM, under the working directory",
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

	f, err := os.Open(romPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()

	header, err := ines.NewHeader(f)
	if err != nil || header == nil {
		return cli.Exit("invalid iNES header", 1)
	}

	fmt.Println(header)

	if !c.Bool("extract") {
		return nil
	}

	outDir := outputDir(romPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if header.Trainer() {
		if err := extractSection(f, filepath.Join(outDir, "trainer.bin"), 512); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	if size := header.PRGROMSize(); size > 0 {
		if err := extractSection(f, filepath.Join(outDir, "prg.bin"), size); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	if size := header.CHRROMSize(); size > 0 {
		if err := extractSection(f, filepath.Join(outDir, "chr.bin"), size); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	return nil
}

func outputDir(romPath string) string {
	_, name := path.Split(romPath)
	if idx := strings.LastIndex(strings.ToLower(name), ".nes"); idx != -1 {
		name = name[:idx]
	}
	return name
}

func extractSection(r *os.File, outPath string, size int) error {
	buf := make([]byte, size)
	n, err := r.Read(buf)
	if err != nil {
		return err
	}
	if n != size {
		return fmt.Errorf("romdump: short read extracting %s: got %d of %d bytes", outPath, n, size)
	}
	return os.WriteFile(outPath, buf, 0o644)
}
