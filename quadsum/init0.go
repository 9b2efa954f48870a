//go:build windows

package main

import (
	. "golang.org/x/sys/windows"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Escape codes are only honored once virtual terminal processing is switched on; consoles that
// refuse it get plain output.
func init() {
	for _, f := range [...]*os.File{os.Stdout, os.Stderr} {
		var mode uint32
		h := Handle(f.Fd())
		if GetConsoleMode(h, &mode) != nil {
			pNoCodesDefault = true
			break
		}
		if mode&ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 &&
			SetConsoleMode(h, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING) != nil {
			pNoCodesDefault = true
			break
		}
	}
	pNoCodes = pNoCodesDefault
}
