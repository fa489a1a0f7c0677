// cmd/touchdiag/prompt_test.go
package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestPromptFrames_RepromptsUntilValid(t *testing.T) {
	in := bufio.NewScanner(strings.NewReader("abc\n-4\n2.5\n7\n"))
	var out bytes.Buffer

	n, err := promptFrames(in, &out)
	if err != nil {
		t.Fatalf("promptFrames: %v", err)
	}
	if n != 7 {
		t.Fatalf("got %d, want 7", n)
	}
	if got := strings.Count(out.String(), "non-negative"); got != 3 {
		t.Fatalf("expected 3 re-prompts, got %d", got)
	}
}

func TestPromptFrames_ZeroAllowed(t *testing.T) {
	in := bufio.NewScanner(strings.NewReader("0\n"))
	var out bytes.Buffer

	n, err := promptFrames(in, &out)
	if err != nil {
		t.Fatalf("promptFrames: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d, want 0", n)
	}
}

func TestPromptFrames_EOF(t *testing.T) {
	in := bufio.NewScanner(strings.NewReader(""))
	var out bytes.Buffer

	if _, err := promptFrames(in, &out); err == nil {
		t.Fatalf("expected error on EOF")
	}
}

func TestReadChoice(t *testing.T) {
	in := bufio.NewScanner(strings.NewReader("  D\nr\n"))

	c, err := readChoice(in)
	if err != nil {
		t.Fatalf("readChoice: %v", err)
	}
	if c != 'D' {
		t.Fatalf("got %q", c)
	}

	c, err = readChoice(in)
	if err != nil {
		t.Fatalf("readChoice: %v", err)
	}
	if c != 'r' {
		t.Fatalf("got %q", c)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]bool{
		"delta": true, "deltas": true, "ref": true, "refs": true,
		"reference": true, "": false, "both": false,
	}

	for in, ok := range cases {
		_, err := parseMode(in)
		if ok && err != nil {
			t.Fatalf("parseMode(%q): %v", in, err)
		}
		if !ok && err == nil {
			t.Fatalf("parseMode(%q): expected error", in)
		}
	}
}
