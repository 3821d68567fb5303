package cli

import (
	"github.com/dmitrijs2005/gallery/internal/client/config"
	"golang.org/x/term"
)

const (
	reset   = "\033[0m"
	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// useColor resolves a config color mode against the output descriptor.
func useColor(mode string, fd int) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(fd)
	}
}

func (a *App) paint(color, s string) string {
	if !a.color || s == "" {
		return s
	}
	return color + s + reset
}
