package output

import (
	"github.com/fatih/color"
)

var (
	Success = color.New(color.FgGreen).SprintFunc()
	Error   = color.New(color.FgRed).SprintFunc()
	Warning = color.New(color.FgYellow).SprintFunc()
	Dim     = color.New(color.Faint).SprintFunc()
	Bold    = color.New(color.Bold).SprintFunc()
)

const (
	SymbolYes = "✓"
	SymbolNo  = "-"
	SymbolFav = "★"
)

// Mark renders a boolean column.
func Mark(ok bool) string {
	if ok {
		return Success(SymbolYes)
	}
	return Dim(SymbolNo)
}

// Star marks favorites; empty otherwise.
func Star(ok bool) string {
	if ok {
		return Warning(SymbolFav)
	}
	return ""
}

// DisableColors turns off color output, e.g. for structured formats.
func DisableColors() {
	color.NoColor = true
}
