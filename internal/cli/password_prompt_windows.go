//go:build windows

package cli

import (
	"os"

	"golang.org/x/sys/windows"
)

func suppressEcho(stdin *os.File) (func(), error) {
	console := windows.Handle(stdin.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(console, &mode); err != nil {
		return nil, err
	}
	if err := windows.SetConsoleMode(console, mode&^windows.ENABLE_ECHO_INPUT); err != nil {
		return nil, err
	}
	return func() { _ = windows.SetConsoleMode(console, mode) }, nil
}
