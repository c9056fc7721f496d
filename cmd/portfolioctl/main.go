// Command portfolioctl drives the portfolio admin and the public pages
// from a terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr)).Execute(); err != nil {
		// Cobra prints the error.
		os.Exit(1)
	}
}
