package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Andresgithub1995/diagnostico/internal/probe"
	"github.com/Andresgithub1995/diagnostico/internal/types"
)

// errMenuQuit reports that the user chose Q, or closed stdin, at the menu.
var errMenuQuit = errors.New("quit")

// runMenu prints the section menu, reads a single choice, and returns the
// probe names it maps to. A quit choice returns errMenuQuit; anything that
// is not a listed number, A, or Q is an error.
func runMenu(in io.Reader, out io.Writer, reg *probe.Registry) ([]string, error) {
	probes := reg.List()

	fmt.Fprintf(out, "\n  Pick a diagnostic section:\n\n")
	for i, p := range probes {
		fmt.Fprintf(out, "    %d) %-22s %s\n", i+1, p.Title(), p.Description())
	}
	fmt.Fprintf(out, "    A) %-22s %s\n", "All sections", "Run the full report")
	fmt.Fprintf(out, "    Q) Quit\n")
	fmt.Fprintf(out, "\n  Choice: ")

	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		fmt.Fprintln(out)
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading menu choice: %w", err)
		}
		return nil, errMenuQuit
	}
	return menuChoice(sc.Text(), probes)
}

// menuChoice maps one menu answer to probe names, case-insensitively.
func menuChoice(raw string, probes []types.Probe) ([]string, error) {
	choice := strings.ToUpper(strings.TrimSpace(raw))
	switch choice {
	case "Q":
		return nil, errMenuQuit
	case "A":
		return []string{types.AllProbes}, nil
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(probes) {
		return nil, fmt.Errorf("invalid choice %q (expected 1-%d, A, or Q)", raw, len(probes))
	}
	return []string{probes[n-1].Name()}, nil
}
