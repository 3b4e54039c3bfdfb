package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errQuit is returned by readers when the learner types q or input ends.
var errQuit = errors.New("quit")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	s := strings.TrimSpace(p.in.Text())
	if strings.EqualFold(s, "q") {
		return "", errQuit
	}
	return s, nil
}

// choice reads an option number in [1, n] and returns its index.
func (p *prompter) choice(n int) (int, error) {
	for {
		s, err := p.line(fmt.Sprintf("Answer [1-%d, q to quit]: ", n))
		if err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(s)
		if err == nil && i >= 1 && i <= n {
			return i - 1, nil
		}
		fmt.Fprintf(p.out, "Please enter a number between 1 and %d.\n", n)
	}
}

// yesNo reads y or n.
func (p *prompter) yesNo(prompt string) (bool, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}
