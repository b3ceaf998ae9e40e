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

// Command nesemu loads a ROM and runs it, optionally under a termui
// debugger that single-steps instructions and shows CPU/RAM state.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/master-g/nescore/go/mgnes/pkg/cartridge"
	"github.com/master-g/nescore/go/mgnes/pkg/clock"
	cli "gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:    "nesemu",
		Usage:   "run an iNES ROM on the cycle-accurate core",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rom",
				Aliases: []string{"r"},
				Usage:   "path to the .nes image",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "open the interactive termui debugger instead of free-running",
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

	cart, err := cartridge.Load(f, romPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	driver := clock.New()
	driver.InsertCartridge(cart)
	driver.TriggerReset()
	driver.RunInstruction() // consume the power-on RESET sequence

	if c.Bool("debug") {
		return runDebugger(driver)
	}
	return runHeadless(driver)
}

// runHeadless free-runs the system until the process is killed; a real
// frontend would instead drain the PPU's frame buffer each vblank.
func runHeadless(driver *clock.Driver) error {
	for {
		driver.RunInstruction()
	}
}
