package util

import "github.com/common-nighthawk/go-figure"

// GenerateASCIIArt renders text as a figlet banner for the CLI greeting.
// An empty font falls back to the library default.
func GenerateASCIIArt(text string, font string) string {
	fig := figure.NewFigure(text, font, true)
	return fig.String()
}
