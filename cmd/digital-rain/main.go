package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/digital-rain/terminal"
)

func main() {
	// Panic Recovery: restore the terminal before printing anything
	defer func() {
		if r := recover(); r != nil {
			crash("DIGITAL-RAIN CRASHED", r)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// crash resets the terminal and exits with the stack trace on stderr
// Uses \r\n since the terminal may still be in raw mode
func crash(label string, r any) {
	terminal.EmergencyReset(os.Stdout)
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s: %v\x1b[0m\r\n", label, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
