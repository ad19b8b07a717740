// Package ansi holds the SGR escape codes used for colored terminal output,
// plus helpers to wrap and strip them.
package ansi

import (
	"regexp"
	"strings"
)

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Yellow = "\033[33m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
)

var sgr = regexp.MustCompile("\033\\[[0-9;]*m")

// Wrap applies codes to s and resets afterwards. With no codes s is
// returned unchanged.
func Wrap(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// Strip removes SGR sequences from s.
func Strip(s string) string {
	return sgr.ReplaceAllString(s, "")
}
