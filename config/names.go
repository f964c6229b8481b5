package config

import (
	"os"
	"strings"
)

const badFileName = "_bad_file_name_"

// CleanFileName drops characters file system would not accept in a single
// path segment and leading dots, so the result never names hidden file or
// parent directory.
func CleanFileName(in string) string {
	forbidden := forbiddenNameChars + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym == 0 || strings.ContainsRune(forbidden, sym) {
			return -1
		}
		return sym
	}, in), ".")
	if len(strings.TrimSpace(out)) == 0 {
		return badFileName
	}
	return out
}

// EnableColorOutput checks if colorized output is possible on stream. Setting
// NO_COLOR in the environment turns colors off regardless.
func EnableColorOutput(stream *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return terminalColors(stream)
}
