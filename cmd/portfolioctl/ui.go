package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sdianka/portfolio/internal/admin"
)

// Success prints a confirmation line.
func (a *App) Success(msg string) {
	fmt.Fprintf(a.out, "✔ %s\n", msg)
}

// Error prints an error line.
func (a *App) Error(msg string) {
	fmt.Fprintf(a.errOut, "✖ %s\n", msg)
}

// Confirm asks on the terminal unless --yes was given.
func (a *App) Confirm(prompt string) bool {
	if a.yes {
		return true
	}
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, _ := a.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Navigate reports the screen the user lands on.
func (a *App) Navigate(path string) {
	fmt.Fprintf(a.out, "→ %s\n", path)
}

func (a *App) table(header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "(none)")
		return
	}
	t := tablewriter.NewWriter(a.out)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.AppendBulk(rows)
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

// position parses a 1-based list position.
func position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return n - 1, nil
}

// cancelled turns a declined confirmation into a plain notice.
func (a *App) cancelled(err error) error {
	if errors.Is(err, admin.ErrCancelled) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	return err
}
