//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const forbiddenNameChars = "/"

func terminalColors(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
