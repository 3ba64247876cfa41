package doctor

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// confirm prints prompt and reads a single keypress. Anything other than
// y/Y, or a non-terminal stdin, counts as no.
func confirm(prompt string) bool {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return false
	}
	fmt.Print(prompt)
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Println()
		return false
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	if _, err := os.Stdin.Read(buf); err != nil {
		fmt.Print("\r\n")
		return false
	}
	fmt.Print("\r\n")
	return buf[0] == 'y' || buf[0] == 'Y'
}
