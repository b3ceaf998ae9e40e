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

// Package log is the core's tiny trace facility. It exists so mg6502, bus,
// and cartridge can emit opt-in diagnostics without pulling in a logging
// framework none of the retrieved reference emulators depend on.
package log

import "fmt"

// Logger receives formatted trace lines.
type Logger interface {
	Log(msg string)
}

type discardLogger struct{}

func (discardLogger) Log(string) {}

var (
	impl    Logger = discardLogger{}
	enabled        = false
)

// SetLogger installs impl as the destination for L. Passing nil restores
// the silent default.
func SetLogger(l Logger) {
	if l == nil {
		impl = discardLogger{}
		return
	}
	impl = l
}

// SetEnabled toggles whether L actually forwards to the installed Logger.
func SetEnabled(on bool) {
	enabled = on
}

// L formats and emits a trace line if logging is enabled.
func L(format string, args ...interface{}) {
	if !enabled {
		return
	}
	impl.Log(fmt.Sprintf(format, args...))
}
