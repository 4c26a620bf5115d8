package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// errBadNumber marks input that could not be parsed as a number.
var errBadNumber = errors.New("not a valid number")

// prompter reads answers to prompts from a line-oriented input.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer

	// ttyFd is the descriptor used for echo-less password input, or -1
	// when input is not a terminal.
	ttyFd int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{reader: bufio.NewReader(in), out: out, ttyFd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.ttyFd = int(f.Fd())
	}
	return p
}

// text prints prompt and returns the next line without surrounding
// whitespace. A final line without a newline is still returned; io.EOF is
// returned only when nothing was read.
func (p *prompter) text(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// password reads a secret. On a terminal it is read without echo. Both
// paths trim surrounding whitespace so a credential hashes the same way
// however stdin is attached.
func (p *prompter) password(prompt string) (string, error) {
	if p.ttyFd < 0 {
		return p.text(prompt)
	}
	fmt.Fprint(p.out, prompt)
	pw, err := readPassword(p.ttyFd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

// integer reads a base-10 integer.
func (p *prompter) integer(prompt string) (int, error) {
	s, err := p.text(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errBadNumber)
	}
	return n, nil
}

// id reads a product identifier.
func (p *prompter) id(prompt string) (int64, error) {
	s, err := p.text(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errBadNumber)
	}
	return n, nil
}

// decimal reads a floating-point number. NaN and infinities are refused.
func (p *prompter) decimal(prompt string) (float64, error) {
	s, err := p.text(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, errBadNumber)
	}
	return f, nil
}
