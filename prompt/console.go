// Package prompt provides interactive authorization prompts for the TMDB login flow.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/s0up4200/tmdbctl/tmdb"
)

// ConsolePrompt shows the TMDB authorization URL and waits for the user to
// confirm they approved the request token in their browser.
type ConsolePrompt struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader

	startOnce sync.Once
	lines     chan readResult
}

// readResult is one line read from the input, or the error that ended input
type readResult struct {
	line string
	err  error
}

var _ tmdb.AuthorizationPrompt = (*ConsolePrompt)(nil)

// NewConsolePrompt creates a prompt reading from in and writing to out
func NewConsolePrompt(in io.Reader, out io.Writer) *ConsolePrompt {
	return &ConsolePrompt{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
		lines:  make(chan readResult),
	}
}

// NewStdPrompt creates a prompt bound to the process terminal
func NewStdPrompt() *ConsolePrompt {
	return NewConsolePrompt(os.Stdin, os.Stdout)
}

// Interactive reports whether the prompt input is a terminal
func (p *ConsolePrompt) Interactive() bool {
	file, ok := p.in.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Present prints authURL and reads the user's answer. An empty answer or
// "y"/"yes" approves, anything else denies.
func (p *ConsolePrompt) Present(ctx context.Context, authURL string) (bool, error) {
	fmt.Fprintf(p.out, "\nOpen the following URL in your browser and approve access:\n\n  %s\n\n", authURL)
	fmt.Fprint(p.out, "Press Enter once approved, or type 'n' to cancel [Y/n]: ")

	p.startOnce.Do(func() { go p.readLoop() })

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case result, ok := <-p.lines:
		if !ok {
			return false, fmt.Errorf("failed to read authorization answer: %w", io.EOF)
		}
		if result.err != nil {
			return false, fmt.Errorf("failed to read authorization answer: %w", result.err)
		}
		switch strings.ToLower(strings.TrimSpace(result.line)) {
		case "", "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// readLoop feeds input lines to Present calls. A single goroutine owns the
// reader, so a cancelled Present leaves its line for the next one.
func (p *ConsolePrompt) readLoop() {
	defer close(p.lines)
	for {
		line, err := p.reader.ReadString('\n')
		if line != "" {
			p.lines <- readResult{line: line}
		}
		if err != nil {
			p.lines <- readResult{err: err}
			return
		}
	}
}
