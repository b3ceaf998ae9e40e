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

package main

import (
	"fmt"
	"strings"

	"github.com/master-g/nescore/go/mgnes/pkg/clock"
	"github.com/master-g/nescore/go/mgnes/pkg/mg6502"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

type debugger struct {
	driver *clock.Driver

	paragraphCPU  *widgets.Paragraph
	paragraphRam0 *widgets.Paragraph
	paragraphRam1 *widgets.Paragraph
	paragraphTips *widgets.Paragraph
}

func runDebugger(driver *clock.Driver) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("nesemu: failed to initialize termui: %w", err)
	}
	defer ui.Close()

	d := &debugger{driver: driver}
	d.initLayout()
	d.draw()

	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "Q", "<C-c>":
			return nil
		case "<Space>":
			d.driver.RunInstruction()
		case "r", "R":
			d.driver.TriggerReset()
		case "i", "I":
			d.driver.TriggerIRQ()
		case "n", "N":
			d.driver.TriggerNMI()
		}
		d.draw()
	}
	return nil
}

func (d *debugger) initLayout() {
	d.paragraphRam0 = widgets.NewParagraph()
	d.paragraphRam0.Title = "RAM Page 0x00"
	d.paragraphRam0.SetRect(0, 0, 56, 18)

	d.paragraphRam1 = widgets.NewParagraph()
	d.paragraphRam1.Title = "RAM Page 0x80"
	d.paragraphRam1.SetRect(0, 18, 56, 36)

	d.paragraphCPU = widgets.NewParagraph()
	d.paragraphCPU.Title = "CPU"
	d.paragraphCPU.SetRect(56, 0, 56+34, 9)

	d.paragraphTips = widgets.NewParagraph()
	d.paragraphTips.Title = "Tips"
	d.paragraphTips.SetRect(0, 36, 56+34, 39)
}

func (d *debugger) draw() {
	d.renderRam(d.paragraphRam0, 0x0000, 16, 16)
	d.renderRam(d.paragraphRam1, 0x8000, 16, 16)
	d.renderCPU()
	d.paragraphTips.Text = "SPACE = Step Instruction    R = RESET    I = IRQ    N = NMI    Q = Quit"

	ui.Render(d.paragraphRam0, d.paragraphRam1, d.paragraphCPU, d.paragraphTips)
}

func (d *debugger) renderRam(p *widgets.Paragraph, addr uint16, numRow, numCol int) {
	cur := addr
	sb := &strings.Builder{}
	for row := 0; row < numRow; row++ {
		sb.WriteString(fmt.Sprintf("$%04X:", cur))
		for col := 0; col < numCol; col++ {
			sb.WriteRune(' ')
			sb.WriteString(fmt.Sprintf("%02X", d.driver.Bus.Read(cur)))
			cur++
		}
		sb.WriteRune('\n')
	}
	p.Text = sb.String()
}

func (d *debugger) renderCPU() {
	cpu := d.driver.CPU
	flags := []uint8{
		mg6502.FlagNegative,
		mg6502.FlagOverflow,
		mg6502.FlagReserved,
		mg6502.FlagBreak,
		mg6502.FlagDecimal,
		mg6502.FlagInterrupt,
		mg6502.FlagZero,
		mg6502.FlagCarry,
	}
	symbols := []rune{'N', 'V', '-', 'B', 'D', 'I', 'Z', 'C'}

	sb := &strings.Builder{}
	sb.WriteString("STATUS: ")
	for i, flag := range flags {
		sb.WriteRune('[')
		sb.WriteRune(symbols[i])
		sb.WriteRune(']')
		sb.WriteString("(fg:")
		if cpu.GetFlag(flag) != 0 {
			sb.WriteString("green")
		} else {
			sb.WriteString("red")
		}
		sb.WriteString(") ")
	}
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("PC: $%04X  SP: $%02X", cpu.PC, cpu.S))
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("A: $%02X [%d]", cpu.A, cpu.A))
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("X: $%02X [%d]", cpu.X, cpu.X))
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("Y: $%02X [%d]", cpu.Y, cpu.Y))
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("cycles: %d", cpu.TotalCycles()))

	d.paragraphCPU.Text = sb.String()
}
