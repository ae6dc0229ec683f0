package cliutil

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prompts on out and reads a yes/no answer from in. Anything that is
// not "yes" or "y" declines.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (yes/no): ", prompt)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "yes", "y":
		return true
	}
	return false
}
