package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown to the terminal. When rendering fails the
// raw markdown is printed instead, it is readable enough.
func printMarkdown(content string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(content)
		return
	}
	out, err := r.Render(content)
	if err != nil {
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}
