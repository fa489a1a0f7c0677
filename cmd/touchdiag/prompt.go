// cmd/touchdiag/prompt.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// promptFrames asks for a frame count until it gets a non-negative
// integer. Zero is valid: the output files are created but no data is
// acquired.
func promptFrames(scan *bufio.Scanner, w io.Writer) (int, error) {
	for {
		fmt.Fprint(w, "Number of frames: ")
		if !scan.Scan() {
			if err := scan.Err(); err != nil {
				return 0, err
			}
			return 0, errNoInput
		}

		n, err := strconv.Atoi(strings.TrimSpace(scan.Text()))
		if err != nil || n < 0 {
			fmt.Fprintln(w, "Please enter a non-negative integer")
			continue
		}
		return n, nil
	}
}

// readChoice returns the first non-space character of the next input
// line.
func readChoice(scan *bufio.Scanner) (byte, error) {
	if !scan.Scan() {
		if err := scan.Err(); err != nil {
			return 0, err
		}
		return 0, errNoInput
	}
	line := strings.TrimSpace(scan.Text())
	if line == "" {
		return 0, nil
	}
	return line[0], nil
}
