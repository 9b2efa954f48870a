//go:build windows

package main

import (
	. "golang.org/x/sys/windows"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Log colors are only honored once virtual terminal processing is switched on.
func init() {
	var mode uint32
	h := Handle(os.Stderr.Fd())
	if GetConsoleMode(h, &mode) != nil {
		disableColors = true
		return
	}
	if mode&ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 &&
		SetConsoleMode(h, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING) != nil {
		disableColors = true
	}
}
